package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 다국어 콘텐츠 저장용 맵 타입 (언어코드 -> 문자열)
type JSON map[string]interface{}

// Value driver.Valuer 구현
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan sql.Scanner 구현
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// GetString 언어코드에 해당하는 문자열 값 반환 (없으면 빈 문자열)
func (j JSON) GetString(key string) string {
	if j == nil {
		return ""
	}
	if value, ok := j[key]; ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// StringArray 문자열 배열 타입 (tags, 레거시 역할 목록 등)
type StringArray []string

// Value driver.Valuer 구현
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan sql.Scanner 구현
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}
