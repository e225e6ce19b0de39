package transformer

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/framegrid/internal/frame"
)

const producerRolePrefix = "transformer_"

// ProducerRole returns the dependency role under which a consumer depends on
// the producer of t.
func ProducerRole(t frame.Transform) string {
	return fmt.Sprintf("%s%s2%s", producerRolePrefix, t.From, t.To)
}

// IsProducerRole reports whether role was made by ProducerRole.
func IsProducerRole(role string) bool {
	return strings.HasPrefix(role, producerRolePrefix)
}

// IsProducerEdge reports whether child is attached to parent only as the
// producer of some of its transforms. Frame selections do not flow along such
// edges: a producer takes its frames from the port it was wired through.
func IsProducerEdge(net Network, parent, child Node) bool {
	roles := net.Roles(parent, child)
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if !IsProducerRole(r) {
			return false
		}
	}
	return true
}
