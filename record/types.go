package record

import "github.com/infinivision/dbdb/constant"

const (
	HeaderSize = constant.IntegerSize
)
