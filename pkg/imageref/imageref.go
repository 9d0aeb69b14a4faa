// Package imageref models container-image references with the loose grammar
// accepted by container runtimes, and serializes them back to a canonical,
// fully-qualified form.
//
// Parsing is deliberately heuristic and total: no reference-grammar
// validation is performed and no input is ever rejected. Malformed input
// degrades into a best-effort structural guess. The one known limitation of
// the host heuristic is that a repository namespace containing a literal dot
// (e.g. "my.team/app") is classified as a registry host; callers that need
// strict validation should use a full reference grammar instead.
package imageref

import (
	"strings"

	"github.com/opencontainers/go-digest"
)

const (
	// DefaultRegistry is the registry assumed when the input does not name one.
	DefaultRegistry = "docker.io"

	// DefaultNamespace is the implicit Docker Hub namespace prepended to
	// single-segment repository names on the default registry.
	DefaultNamespace = "library"

	// DefaultTag is the tag assumed when the input carries neither a tag nor
	// a digest.
	DefaultTag = "latest"
)

// Ref is a structured container-image reference. At most one of Tag and
// Digest is set; Parse guarantees exactly one of them. Nil means unset, an
// empty non-nil value is a (possibly malformed) value that was present in
// the input and is preserved as-is.
type Ref struct {
	Registry   string
	Repository string
	Tag        *string
	Digest     *string
}

// isRegistryHost reports whether the token before the first "/" names a
// registry host rather than the first segment of a repository path.
// Heuristic per https://stackoverflow.com/a/42116190: "localhost", or any
// token containing a dot or a colon (ports included).
func isRegistryHost(token string) bool {
	return token == "localhost" || strings.ContainsAny(token, ".:")
}

// Parse parses s into a Ref, applying the default registry, the implicit
// "library/" namespace and the default tag where the input leaves them out.
// It is total: it never fails, not even on empty or malformed input.
func Parse(s string) Ref {
	registry := DefaultRegistry
	remainder := s
	if host, rest, ok := strings.Cut(s, "/"); ok && isRegistryHost(host) {
		registry = host
		remainder = rest
	}

	// Single-segment names on Docker Hub live in the "library" namespace.
	// An explicit "docker.io/" prefix converges to the same result here.
	if registry == DefaultRegistry && !strings.Contains(remainder, "/") {
		remainder = DefaultNamespace + "/" + remainder
	}

	if repo, dgst, ok := strings.Cut(remainder, "@"); ok {
		// Everything after the first "@" is kept verbatim, even when empty
		// or syntactically bogus.
		return Ref{Registry: registry, Repository: repo, Digest: &dgst}
	}

	repo, tag, ok := strings.Cut(remainder, ":")
	if !ok {
		tag = DefaultTag
	}
	return Ref{Registry: registry, Repository: repo, Tag: &tag}
}

// String returns the canonical serialization of r. It is a pure function of
// the field values and never fails, including on the zero Ref.
func (r Ref) String() string {
	sb := &strings.Builder{}
	if r.Registry != "" {
		sb.WriteString(r.Registry)
		sb.WriteByte('/')
	}
	sb.WriteString(r.Repository)
	switch {
	case r.Tag != nil:
		sb.WriteByte(':')
		sb.WriteString(*r.Tag)
	case r.Digest != nil:
		sb.WriteByte('@')
		sb.WriteString(*r.Digest)
	}
	return sb.String()
}

// Canonical parses s and returns its canonical serialization. The result is
// stable: re-parsing it yields the same Ref.
func Canonical(s string) string {
	return Parse(s).String()
}

// WellFormedDigest reports whether the digest component, if any, parses as a
// well-formed OCI digest. It is informational only and has no influence on
// parsing or serialization.
func (r Ref) WellFormedDigest() (digest.Digest, bool) {
	if r.Digest == nil {
		return "", false
	}
	d, err := digest.Parse(*r.Digest)
	if err != nil {
		return "", false
	}
	return d, true
}
