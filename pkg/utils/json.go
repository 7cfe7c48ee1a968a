// Package utils holds small helpers shared by the dispatch packages.
package utils

import (
	"github.com/bytedance/sonic"
)

// ToJSON 将对象转换为JSON字符串
func ToJSON(v any) (string, error) {
	bytes, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ToJSONPretty 将对象转换为格式化的JSON字符串
func ToJSONPretty(v any) (string, error) {
	bytes, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// FromJSONBytes 将JSON字节数组转换为对象
func FromJSONBytes[T any](data []byte) (T, error) {
	var v T
	err := sonic.Unmarshal(data, &v)
	return v, err
}

// DecodeObject 将JSON字节数组解析为顶层对象; 非对象(含null)返回nil
func DecodeObject(data []byte) (map[string]any, error) {
	var v any
	if err := sonic.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	obj, _ := v.(map[string]any)
	return obj, nil
}
