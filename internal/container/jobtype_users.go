package container

import (
	"fmt"
	"strings"
	"unicode"

	set "github.com/duke-git/lancet/v2/datastructure/set"
	"github.com/duke-git/lancet/v2/slice"
)

// JobTypeProxyMap designates one proxy user per job type. It is parsed once
// at startup and only read afterwards.
type JobTypeProxyMap map[string]string

// ConfigParseError reports a malformed job-type proxy user mapping.
type ConfigParseError struct {
	Entry   string
	Message string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("invalid job type proxy user entry %q: %s", e.Entry, e.Message)
}

// ParseJobTypeProxyMap parses "type1,user1;type2,user2". Whitespace inside
// tokens is removed. Tokens past the second in an entry are ignored.
func ParseJobTypeProxyMap(config string) (JobTypeProxyMap, error) {
	m := make(JobTypeProxyMap)
	for _, entry := range strings.Split(config, ";") {
		if stripWhitespace(entry) == "" {
			continue
		}
		tokens := slice.Filter(strings.Split(entry, ","), func(_ int, token string) bool {
			return token != ""
		})
		if len(tokens) < 2 {
			return nil, &ConfigParseError{Entry: entry, Message: "expected <jobtype>,<proxyuser>"}
		}
		jobType := stripWhitespace(tokens[0])
		if jobType == "" {
			return nil, &ConfigParseError{Entry: entry, Message: "job type is empty"}
		}
		m[jobType] = stripWhitespace(tokens[1])
	}
	return m, nil
}

// SelectRelevantProxyUsers returns the proxy users designated for the given
// job types, sorted. Job types without a mapping, or mapped to an empty user,
// contribute nothing.
func SelectRelevantProxyUsers(m JobTypeProxyMap, jobTypes []string) []string {
	users := set.New[string]()
	for _, jobType := range jobTypes {
		if user := m[jobType]; user != "" {
			users.Add(user)
		}
	}
	return sortedValues(users)
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
