package request

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// LaxInt 宽松整数：接受 50、50.0 和 "50"，拒绝带小数部分的数、布尔值和非数字字符串
type LaxInt int

func (n *LaxInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0)
		if err != nil {
			return laxIntError("string")
		}
		*n = LaxInt(v)
		return nil
	}

	if v, err := strconv.ParseInt(string(data), 10, 0); err == nil {
		*n = LaxInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return laxIntError(jsonKind(data))
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return laxIntError("number " + string(data))
	}
	*n = LaxInt(f)
	return nil
}

func (n LaxInt) Int() int {
	return int(n)
}

// laxIntError 字段名由 encoding/json 在外层补全
func laxIntError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(0)}
}

func jsonKind(data []byte) string {
	switch {
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		return "bool"
	case len(data) > 0 && data[0] == '{':
		return "object"
	case len(data) > 0 && data[0] == '[':
		return "array"
	default:
		return "value"
	}
}
