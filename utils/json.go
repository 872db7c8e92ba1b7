package utils

import "github.com/goccy/go-json"

func StructToBytes(s interface{}) ([]byte, error) {
	return json.Marshal(s)
}

func BytesToStruct(data []byte, s interface{}) error {
	return json.Unmarshal(data, s)
}

// MergeJSON applies a shallow merge of patch fields onto a JSON object and
// returns the merged document. Fields absent from patch are left untouched.
func MergeJSON(original []byte, patch map[string]interface{}) ([]byte, error) {
	merged := map[string]interface{}{}
	if len(original) > 0 {
		if err := json.Unmarshal(original, &merged); err != nil {
			return nil, err
		}
	}
	for k, v := range patch {
		merged[k] = v
	}
	return json.Marshal(merged)
}
