package project

import (
	"context"
	"fmt"
)

const (
	// UserToProxy is the property naming the identity a job runs as.
	UserToProxy = "user.to.proxy"
	// FlowFileSuffix is appended to a flow id to name its 2.0 property source.
	FlowFileSuffix = ".flow"
)

// Props is a flat property bag.
type Props map[string]string

// GetString returns the value of key, or def when the key is missing.
func (p Props) GetString(key, def string) string {
	if p == nil {
		return def
	}
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// PropertyKey addresses one property source of a flow or of a node in it.
// An empty NodeID addresses flow-level properties.
type PropertyKey struct {
	ProjectID int
	FlowID    string
	NodeID    string
	Source    string
}

func (k PropertyKey) String() string {
	return fmt.Sprintf("%d/%s/%s/%s", k.ProjectID, k.FlowID, k.NodeID, k.Source)
}

// PropertyLookup resolves property bags. Implementations return nil props
// and a nil error when the source does not exist.
type PropertyLookup interface {
	// Properties returns the properties loaded from the source files.
	Properties(ctx context.Context, key PropertyKey) (Props, error)
	// JobOverrideProperties returns the properties a user entered for a job from the UI.
	JobOverrideProperties(ctx context.Context, key PropertyKey) (Props, error)
}

// ProjectRegistry returns static project and flow definitions.
type ProjectRegistry interface {
	Project(ctx context.Context, id int) (*Project, error)
}
