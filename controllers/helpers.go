package controllers

import (
	"errors"
	"io"
	"strconv"

	"foodorder/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.BadRequest("invalid " + name)
	}
	return uint(n), nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is required")
		}
		return apperr.BadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// bindOptionalJSON accepts an empty body and leaves dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.BadRequest("invalid request body: " + err.Error())
	}
	return nil
}
