package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldError 描述单个字段的校验失败原因，作为 422 响应的明细项。
type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// validationDetails 将绑定错误翻译为字段级错误明细。
// 覆盖三类失败：字段缺失（validator）、类型不匹配（json.UnmarshalTypeError）、
// 请求体不是合法 JSON（语法错误或空体）。
func validationDetails(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{
				Field:  strings.ToLower(fe.Field()),
				Reason: bindReason(fe.Tag()),
			})
		}
		return out
	}
	var uterr *json.UnmarshalTypeError
	if errors.As(err, &uterr) {
		field := uterr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if field == "" {
			field = "body"
		}
		return []fieldError{{Field: field, Reason: "must be a number"}}
	}
	var serr *json.SyntaxError
	if errors.As(err, &serr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []fieldError{{Field: "body", Reason: "request body must be valid JSON"}}
	}
	return []fieldError{{Field: "body", Reason: err.Error()}}
}

func bindReason(tag string) string {
	switch tag {
	case "required":
		return "field is required"
	default:
		return "failed constraint: " + tag
	}
}
