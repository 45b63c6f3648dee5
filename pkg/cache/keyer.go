package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/strata/pkg/layout"
)

// Key types, used as the prefix of generated keys and as the keyType label
// of cache hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies a laid-out graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a laid-out graph.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the graph that change a layout.
type LayoutKeyOpts struct {
	Config layout.Config `json:"config"`
}

// ArtifactKeyOpts are the inputs besides the layout that change a render.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Padding int    `json:"padding,omitempty"`
	Labels  bool   `json:"labels,omitempty"`
}

// DefaultKeyer keys entries by "<key type>:<sha256 of the components>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	// Checking invariants does not change the result.
	opts.Config.CheckInvariants = false
	return KeyTypeLayout + ":" + digest(graphHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return KeyTypeArtifact + ":" + digest(layoutHash, opts)
}

// ScopedKeyer prefixes the keys of another keyer, so that several
// deployments can share one Redis database.
//
//	keyer := cache.NewScopedKeyer(nil, "strata:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digest hashes the JSON encoding of the key components. The option structs
// only hold plain fields, so encoding cannot fail.
func digest(parts ...any) string {
	data, _ := json.Marshal(parts)
	return Hash(data)
}
