package middleware

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EnsureUTF8Body 确保 JSON 请求体是 UTF-8 编码
// 部分呼叫中心集成仍以 Windows-1252 发送西语内容（ñ、á 等），此处统一转为 UTF-8
func EnsureUTF8Body() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			c.Next()
			return
		}

		if len(body) > 0 && !utf8.Valid(body) {
			if converted, err := decodeWindows1252(body); err == nil && utf8.Valid(converted) {
				body = converted
				c.Request.ContentLength = int64(len(body))
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

func decodeWindows1252(b []byte) ([]byte, error) {
	reader := transform.NewReader(bytes.NewReader(b), charmap.Windows1252.NewDecoder())
	return io.ReadAll(reader)
}
