package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/summarydesk/backend/internal/infrastructure/config"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Catalog 仪表盘标签目录
type Catalog struct {
	labels        map[string]map[string]string
	locales       []string
	matcher       language.Matcher
	defaultLocale string
}

// NewCatalog 加载内置的标签文件
func NewCatalog(ui *config.UIConfig) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	c := &Catalog{labels: make(map[string]map[string]string)}
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", e.Name(), err)
		}
		labels := make(map[string]string)
		if err := yaml.Unmarshal(data, &labels); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", e.Name(), err)
		}
		c.labels[strings.TrimSuffix(e.Name(), ".yaml")] = labels
	}

	for locale := range c.labels {
		c.locales = append(c.locales, locale)
	}
	sort.Strings(c.locales)

	c.defaultLocale = "es"
	if ui != nil && c.IsSupported(ui.DefaultLocale) {
		c.defaultLocale = ui.DefaultLocale
	}

	// 默认语言放在首位，作为匹配器的兜底
	tags := []language.Tag{language.Make(c.defaultLocale)}
	ordered := []string{c.defaultLocale}
	for _, l := range c.locales {
		if l != c.defaultLocale {
			tags = append(tags, language.Make(l))
			ordered = append(ordered, l)
		}
	}
	c.locales = ordered
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Locales 支持的语言列表，默认语言在首位
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// Default 默认语言
func (c *Catalog) Default() string {
	return c.defaultLocale
}

// IsSupported 是否支持该语言
func (c *Catalog) IsSupported(locale string) bool {
	_, ok := c.labels[locale]
	return ok
}

// Labels 返回指定语言的标签（副本），不支持时返回默认语言
func (c *Catalog) Labels(locale string) map[string]string {
	src, ok := c.labels[locale]
	if !ok {
		src = c.labels[c.defaultLocale]
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Label 查找单个标签，缺失时返回键本身
func (c *Catalog) Label(locale, key string) string {
	if labels, ok := c.labels[locale]; ok {
		if v, ok := labels[key]; ok {
			return v
		}
	}
	if v, ok := c.labels[c.defaultLocale][key]; ok {
		return v
	}
	return key
}

// Resolve 依次尝试显式语言（查询参数、Cookie），最后按 Accept-Language 协商
func (c *Catalog) Resolve(explicit []string, acceptLanguage string) string {
	for _, candidate := range explicit {
		if candidate == "" {
			continue
		}
		if c.IsSupported(candidate) {
			return candidate
		}
		base, _ := language.Make(candidate).Base()
		if c.IsSupported(base.String()) {
			return base.String()
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := c.matcher.Match(tags...)
			if conf != language.No {
				return c.locales[idx]
			}
		}
	}
	return c.defaultLocale
}
