package readme

import (
	"fmt"
	"strings"
)

// Policy selects what body a new readme file receives.
type Policy int

const (
	Empty Policy = iota + 1
	WithFileList
	Template
	TemplateWithFileList
)

var policyNames = map[Policy]string{
	Empty:                "EMPTY",
	WithFileList:         "WITH_FILE_LIST",
	Template:             "TEMPLATE",
	TemplateWithFileList: "TEMPLATE_WITH_FILE_LIST",
}

var policyAliases = map[string]Policy{
	"empty":          Empty,
	"files":          WithFileList,
	"template":       Template,
	"template-files": TemplateWithFileList,
}

// Policies returns all policies in menu order.
func Policies() []Policy {
	return []Policy{Empty, WithFileList, Template, TemplateWithFileList}
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Label is the human readable menu text.
func (p Policy) Label() string {
	switch p {
	case Empty:
		return "Create empty README"
	case WithFileList:
		return "Create README with file list"
	case Template:
		return "Create README from template"
	case TemplateWithFileList:
		return "Create README from template/file list"
	}
	return p.String()
}

// IncludesListing reports whether the directory listing is written.
func (p Policy) IncludesListing() bool {
	return p == WithFileList || p == TemplateWithFileList
}

// UsesTemplate reports whether the template document is copied.
func (p Policy) UsesTemplate() bool {
	return p == Template || p == TemplateWithFileList
}

// ParsePolicy accepts a policy name (EMPTY, WITH_FILE_LIST, ...) or one of the
// short aliases empty, files, template and template-files, in any case.
func ParsePolicy(s string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if p, ok := policyAliases[key]; ok {
		return p, nil
	}
	for p, name := range policyNames {
		if strings.EqualFold(name, key) {
			return p, nil
		}
	}
	return 0, &UnknownPolicyError{Value: s}
}
