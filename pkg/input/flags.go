package input

import "strings"

// StringSliceFlag implements flag.Value for repeated or comma-separated
// string flags, e.g. -u a.com,b.com -u c.com.
type StringSliceFlag []string

func (s *StringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *StringSliceFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*s = append(*s, v)
		}
	}
	return nil
}
