package linkscan

import (
	"fmt"
	"strings"
)

// Format renders findings as text suitable for inclusion in an AI prompt.
func (f *Findings) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "URL: %s\n", f.URL)
	fmt.Fprintf(&b, "Domain: %s\n", f.Domain)
	fmt.Fprintf(&b, "Technical risk level: %s\n", strings.ToUpper(string(f.Risk)))

	if f.IsKnownDomain {
		b.WriteString("Domain status: recognised legitimate Zimbabwean site\n")
	} else {
		b.WriteString("Domain status: not in the list of known legitimate sites\n")
	}

	b.WriteString("Technical findings:\n")
	for _, issue := range f.Issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}

	return b.String()
}
