package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// InitValidator 初始化验证器
func InitValidator() {
	validate = validator.New()

	// 注册自定义验证函数
	validate.RegisterValidation("username", validateUsername)
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// validateUsername 验证用户名: 2-30位字母、数字或下划线
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 2 || len(username) > 30 {
		return false
	}
	matched, _ := regexp.MatchString("^[a-zA-Z0-9_]+$", username)
	return matched
}

// ValidateStruct 验证结构体，按字段收集全部错误后一次返回
func ValidateStruct(s interface{}) map[string]string {
	v := GetValidator()
	if err := v.Struct(s); err != nil {
		return FormatFieldErrors(s, err)
	}
	return nil
}

// FormatFieldErrors 把验证错误整理为 字段名->错误消息
func FormatFieldErrors(s interface{}, err error) map[string]string {
	fieldErrors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors["form"] = err.Error()
		return fieldErrors
	}

	for _, e := range validationErrors {
		field := GetStructFieldName(s, e.StructField())
		tag := e.Tag()
		param := e.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s是必填字段", field)
		case "min":
			message = fmt.Sprintf("%s长度不能小于%s", field, param)
		case "max":
			message = fmt.Sprintf("%s长度不能大于%s", field, param)
		case "email":
			message = fmt.Sprintf("%s必须是有效的邮箱地址", field)
		case "username":
			message = fmt.Sprintf("%s只能包含字母、数字和下划线，长度2-30", field)
		case "eqfield":
			message = "两次输入的密码不一致"
		default:
			message = fmt.Sprintf("%s验证失败: %s", field, tag)
		}

		// 保留同一字段的第一条错误
		if _, exists := fieldErrors[field]; !exists {
			fieldErrors[field] = message
		}
	}

	return fieldErrors
}

// GetStructFieldName 获取结构体JSON字段名
func GetStructFieldName(s interface{}, field string) string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	f, ok := t.FieldByName(field)
	if !ok {
		return field
	}

	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field
	}

	return strings.Split(tag, ",")[0]
}
