package service

import (
	"errors"

	"gorm.io/gorm"
)

// notFoundAs 把存储层的 ErrRecordNotFound 转换成业务错误
func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
