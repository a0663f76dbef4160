package flag

import (
	"fmt"
	"net/url"
	"strings"
)

// NodeList is a flag.Value accepting a space or comma separated list of API
// node URLs.
type NodeList []string

func (n NodeList) String() string {
	return strings.Join(n, ", ")
}
func (n *NodeList) Set(s string) error {
	list := strings.Fields(s)
	// If not able to split on space, attempt to split on comma.
	if len(list) == 1 {
		list = strings.Split(s, ",")
	}
	for _, node := range list {
		u, err := url.Parse(node)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("Invalid node URL: %#v", node)
		}
	}
	*n = append(*n, list...)
	return nil
}
