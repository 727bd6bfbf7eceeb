package linkscan

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"chokwadi/sources/tracing"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Findings is the outcome of the heuristic security scan for one URL. Risk
// only ever escalates while checks run, never de-escalates.
type Findings struct {
	URL           string
	Risk          RiskLevel
	Issues        []string
	Domain        string
	Scheme        string
	IsKnownDomain bool
}

func (f *Findings) escalate(level RiskLevel) {
	if riskOrder[level] > riskOrder[f.Risk] {
		f.Risk = level
	}
}

// Known legitimate Zimbabwean domains used as typosquat targets and to clear
// official sites from path heuristics.
var legitimateDomains = map[string]bool{
	"ecocash.co.zw": true, "innbucks.co.zw": true, "rbz.co.zw": true, "zimra.co.zw": true,
	"zse.co.zw": true, "herald.co.zw": true, "chronicle.co.zw": true, "newsday.co.zw": true,
	"techzim.co.zw": true, "zbc.co.zw": true, "parlzim.gov.zw": true, "zimgov.gov.zw": true,
	"mhte.gov.zw": true, "mohcc.gov.zw": true, "potraz.gov.zw": true, "zec.org.zw": true,
	"uz.ac.zw": true, "nust.ac.zw": true, "hit.ac.zw": true, "msu.ac.zw": true,
	"steward.co.zw": true, "cbz.co.zw": true, "stanbicbank.co.zw": true, "zetdc.co.zw": true,
	"econet.co.zw": true, "netone.co.zw": true, "telecel.co.zw": true,
}

var suspiciousTLDs = []string{
	".xyz", ".top", ".club", ".work", ".click", ".link",
	".buzz", ".gq", ".ml", ".cf", ".tk", ".ga",
}

var scamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ecocash.*free`),
	regexp.MustCompile(`innbucks.*bonus`),
	regexp.MustCompile(`zim.*lottery`),
	regexp.MustCompile(`dv[-_]?lottery.*apply`),
	regexp.MustCompile(`rbz.*zig.*exchange`),
	regexp.MustCompile(`free[-_]?airtime`),
	regexp.MustCompile(`zimra.*refund`),
	regexp.MustCompile(`zesa.*free.*tokens?`),
	regexp.MustCompile(`diaspora.*send.*money`),
	regexp.MustCompile(`forex.*guaranteed.*profit`),
	regexp.MustCompile(`crypto.*invest.*zim`),
	regexp.MustCompile(`whatsapp.*gold`),
}

var typosquatTargets = map[string]string{
	"ecocash":  "ecocash.co.zw",
	"innbucks": "innbucks.co.zw",
	"econet":   "econet.co.zw",
	"cbz":      "cbz.co.zw",
	"steward":  "steward.co.zw",
	"zimra":    "zimra.co.zw",
	"rbz":      "rbz.co.zw",
}

var suspiciousPathWords = []string{"login", "signin", "verify", "update", "secure", "account", "confirm"}

var urlShorteners = []string{"bit.ly", "tinyurl.com", "t.co", "goo.gl", "is.gd", "rb.gy", "shorturl.at"}

var ipHostPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan runs the heuristic checks against a URL. It never performs network
// I/O; everything is derived from the URL string itself.
func (x *Scanner) Scan(logger *tracing.Logger, rawURL string) *Findings {
	defer tracing.ProfilePoint(logger, "Link scan completed", "linkscan.scan", tracing.ScanUrl, rawURL)()

	findings := &Findings{URL: rawURL, Risk: RiskLow}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		findings.Issues = append(findings.Issues, fmt.Sprintf("Could not fully analyse URL: %v", err))
		findings.escalate(RiskMedium)
		return findings
	}

	domain := strings.ToLower(parsed.Hostname())
	path := strings.ToLower(parsed.Path)
	fullLower := strings.ToLower(rawURL)

	findings.Domain = domain
	findings.Scheme = parsed.Scheme
	findings.IsKnownDomain = legitimateDomains[domain]

	if parsed.Scheme == "http" {
		findings.Issues = append(findings.Issues, "No HTTPS encryption - data sent insecurely")
		findings.escalate(RiskMedium)
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			findings.Issues = append(findings.Issues, fmt.Sprintf("Suspicious domain extension (%s) commonly used in scams", tld))
			findings.escalate(RiskHigh)
			break
		}
	}

	if target := checkTyposquatting(domain); target != "" {
		findings.Issues = append(findings.Issues, fmt.Sprintf("Possible impersonation of '%s' - domain looks similar but isn't the real site", target))
		findings.escalate(RiskCritical)
	}

	for _, pattern := range scamPatterns {
		if pattern.MatchString(fullLower) {
			findings.Issues = append(findings.Issues, "URL matches known Zimbabwean scam/fraud patterns")
			findings.escalate(RiskHigh)
			break
		}
	}

	if len(rawURL) > 200 {
		findings.Issues = append(findings.Issues, "Unusually long URL - may be disguising destination")
		findings.escalate(RiskMedium)
	}

	if !findings.IsKnownDomain {
		for _, word := range suspiciousPathWords {
			if strings.Contains(path, word) {
				findings.Issues = append(findings.Issues, fmt.Sprintf("Contains '%s' in path on non-official domain - possible phishing", word))
				findings.escalate(RiskHigh)
				break
			}
		}
	}

	if ipHostPattern.MatchString(domain) {
		findings.Issues = append(findings.Issues, "Uses IP address instead of domain name - highly suspicious")
		findings.escalate(RiskCritical)
	}

	if strings.Count(domain, ".") > 3 {
		findings.Issues = append(findings.Issues, "Excessive subdomains - may be impersonating a legitimate site")
		findings.escalate(RiskMedium)
	}

	for _, shortener := range urlShorteners {
		if strings.Contains(domain, shortener) {
			findings.Issues = append(findings.Issues, "Uses URL shortener - destination is hidden")
			findings.escalate(RiskMedium)
			break
		}
	}

	if len(findings.Issues) == 0 {
		findings.Issues = append(findings.Issues, "No obvious red flags detected - but always verify independently")
	}

	logger.I("Link scanned", tracing.ScanUrl, rawURL, tracing.ScanRisk, string(findings.Risk))
	return findings
}

func checkTyposquatting(domain string) string {
	if legitimateDomains[domain] {
		return ""
	}

	domainBase := strings.ToLower(strings.Split(domain, ".")[0])

	for targetBase, targetFull := range typosquatTargets {
		if domainBase == targetBase {
			continue
		}
		if strings.Contains(domainBase, targetBase) || levenshtein(domainBase, targetBase) <= 2 {
			return targetFull
		}
	}

	return ""
}

func levenshtein(s1, s2 string) int {
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 0; i < len(s1); i++ {
		curr := make([]int, 0, len(s2)+1)
		curr = append(curr, i+1)
		for j := 0; j < len(s2); j++ {
			insertions := prev[j+1] + 1
			deletions := curr[j] + 1
			substitutions := prev[j]
			if s1[i] != s2[j] {
				substitutions++
			}
			curr = append(curr, min(insertions, deletions, substitutions))
		}
		prev = curr
	}

	return prev[len(s2)]
}
