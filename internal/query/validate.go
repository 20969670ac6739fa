package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// org: 作为过滤键出现才算违规：行首、空白或左括号之后，后跟冒号
	orgFilterPattern = regexp.MustCompile(`(?i)(^|[\s(])org:`)

	// country:GT 已存在的判断，大小写不敏感，冒号两侧允许空白
	countryGTPattern = regexp.MustCompile(`(?i)\bcountry\s*:\s*gt\b`)
)

// ErrPolicyViolation 表示查询里使用了被禁止的过滤器
var ErrPolicyViolation = errors.New("el filtro 'org:' está prohibido por la consigna; ajusta la consulta")

// AssertNoOrgFilter 拒绝使用 org: 过滤器的查询。
// 只匹配作为过滤键的出现，嵌在其他token里的子串不算。
func AssertNoOrgFilter(q string) error {
	if orgFilterPattern.MatchString(q) {
		return ErrPolicyViolation
	}
	return nil
}

// EnforceCountryGT 保证查询带有 country:GT 过滤器。
// 已存在时原样返回（幂等），否则把原查询括起来再追加过滤器。
func EnforceCountryGT(q string) string {
	q = strings.TrimSpace(q)
	if countryGTPattern.MatchString(q) {
		return q
	}
	return fmt.Sprintf("(%s) country:GT", q)
}
