package utils

import "github.com/goccy/go-json"

func StructToString(s interface{}) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func StringToStruct(data string, s interface{}) error {
	return json.Unmarshal([]byte(data), s)
}
