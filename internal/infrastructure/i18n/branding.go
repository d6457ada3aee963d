package i18n

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/summarydesk/backend/internal/infrastructure/config"
)

const (
	// DefaultPrimaryColor 默认主色
	DefaultPrimaryColor = "#0B6CFF"
	// DefaultLogoURL 默认 Logo
	DefaultLogoURL = "/logo.png"
	// darkShadeDelta 深色变体的亮度偏移
	darkShadeDelta = -20
)

var hexColorPattern = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// RGB 颜色分量
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Branding 仪表盘品牌配置
type Branding struct {
	LogoURL          string `json:"logoUrl"`
	PrimaryColor     string `json:"primaryColor"`
	PrimaryColorDark string `json:"primaryColorDark"`
	PrimaryRGB       RGB    `json:"primaryRgb"`
}

// BrandingProvider 持有当前品牌配置，配置文件变化时可热更新
type BrandingProvider struct {
	mu      sync.RWMutex
	current Branding
}

// NewBrandingProvider 创建品牌配置提供者
func NewBrandingProvider(ui *config.UIConfig) *BrandingProvider {
	p := &BrandingProvider{}
	if ui == nil {
		ui = &config.UIConfig{}
	}
	p.Update(*ui)
	return p
}

// Current 返回当前品牌配置
func (p *BrandingProvider) Current() Branding {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Update 根据展示配置重新计算品牌配置
func (p *BrandingProvider) Update(ui config.UIConfig) {
	b := BuildBranding(ui.LogoURL, ui.PrimaryColor)
	p.mu.Lock()
	p.current = b
	p.mu.Unlock()
}

// BuildBranding 计算品牌配置
func BuildBranding(logoURL, primaryColor string) Branding {
	if logoURL == "" {
		logoURL = DefaultLogoURL
	}
	primary := NormalizeColor(primaryColor)
	return Branding{
		LogoURL:          logoURL,
		PrimaryColor:     primary,
		PrimaryColorDark: AdjustBrightness(primary, darkShadeDelta),
		PrimaryRGB:       HexToRGB(primary),
	}
}

// NormalizeColor 补全 # 前缀，非法值回退到默认主色
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultPrimaryColor
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	if !hexColorPattern.MatchString(color) {
		return DefaultPrimaryColor
	}
	return color
}

// AdjustBrightness 每个分量加上 delta 并截断到 [0, 255]
func AdjustBrightness(hex string, delta int) string {
	num, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return hex
	}
	clamp := func(v int) int {
		return min(255, max(0, v))
	}
	r := clamp(int(num>>16) + delta)
	g := clamp(int((num>>8)&0xff) + delta)
	b := clamp(int(num&0xff) + delta)
	return fmt.Sprintf("#%06x", (r<<16)|(g<<8)|b)
}

// HexToRGB 解析十六进制颜色，非法值返回默认主色分量
func HexToRGB(hex string) RGB {
	m := hexColorPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{R: 11, G: 108, B: 255}
	}
	parse := func(s string) int {
		v, _ := strconv.ParseUint(s, 16, 8)
		return int(v)
	}
	return RGB{R: parse(m[1]), G: parse(m[2]), B: parse(m[3])}
}
