package build

import (
	"crypto"
	_ "crypto/sha1" // registers crypto.SHA1
	"encoding/binary"
	"encoding/hex"
	"slices"
	"sort"
)

// BuildRequestID identifies a build by the fields that affect its output.
// Two IDs are equal exactly when their digests are equal, so the type can be
// compared with == and used as a map key.
type BuildRequestID struct {
	hash string
}

// Of computes the identity of r.
func Of(r *Request) BuildRequestID {
	return BuildRequestID{hash: ComputeDigest(FieldsOf(r))}
}

// Hash returns the 40 character lowercase hex SHA-1 digest.
func (id BuildRequestID) Hash() string { return id.hash }

func (id BuildRequestID) String() string { return id.hash }

// IsZero reports whether the ID was never computed.
func (id BuildRequestID) IsZero() bool { return id.hash == "" }

// Fields are the inputs of the identity digest, in digest order.
type Fields struct {
	AddDefaultBuildArguments   bool
	AddDefaultBuildEnvironment bool
	BuildArguments             []string
	BuildEnvironment           map[string]string
	ForwardProperties          []string
	GavSetIncludes             string
	GavSetExcludes             string
	ScmURLs                    []string
	SkipTests                  bool
	SrcVersion                 string
	Version                    string
	TimeoutMs                  int64
	Verbosity                  string
}

// FieldsOf extracts the digest inputs of r.
func FieldsOf(r *Request) Fields {
	return Fields{
		AddDefaultBuildArguments:   r.AddDefaultBuildArguments,
		AddDefaultBuildEnvironment: r.AddDefaultBuildEnvironment,
		BuildArguments:             r.BuildArguments,
		BuildEnvironment:           r.BuildEnvironment,
		ForwardProperties:          r.ForwardProperties,
		GavSetIncludes:             string(r.GavSet.AppendIncludes(nil)),
		GavSetExcludes:             string(r.GavSet.AppendExcludes(nil)),
		ScmURLs:                    r.ScmURLs,
		SkipTests:                  r.SkipTests,
		SrcVersion:                 r.SrcVersion.String(),
		Version:                    r.Version,
		TimeoutMs:                  r.Timeout.Milliseconds(),
		Verbosity:                  r.Verbosity.String(),
	}
}

// ComputeDigest hashes f with SHA-1. Every field is encoded unambiguously:
// booleans as one byte, integers as 8 bytes big-endian, strings with an
// 8 byte length prefix, and lists and maps with an 8 byte count. Build
// environment keys are sorted. Forward properties are treated as a set and
// sorted with duplicates removed. It panics if SHA-1 is not available.
func ComputeDigest(f Fields) string {
	if !crypto.SHA1.Available() {
		panic("build: SHA-1 is not available; build request identity cannot be computed")
	}
	h := crypto.SHA1.New()
	h.Write(Encode(f))
	return hex.EncodeToString(h.Sum(nil))
}

// Encode returns the canonical byte form of f hashed by ComputeDigest.
func Encode(f Fields) []byte {
	var b []byte
	b = appendBool(b, f.AddDefaultBuildArguments)
	b = appendBool(b, f.AddDefaultBuildEnvironment)
	b = appendStrings(b, f.BuildArguments)

	keys := make([]string, 0, len(f.BuildEnvironment))
	for k := range f.BuildEnvironment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b = binary.BigEndian.AppendUint64(b, uint64(len(keys)))
	for _, k := range keys {
		b = appendString(b, k)
		b = appendString(b, f.BuildEnvironment[k])
	}

	props := slices.Clone(f.ForwardProperties)
	slices.Sort(props)
	b = appendStrings(b, slices.Compact(props))

	b = appendString(b, f.GavSetIncludes)
	b = appendString(b, f.GavSetExcludes)
	b = appendStrings(b, f.ScmURLs)
	b = appendBool(b, f.SkipTests)
	b = appendString(b, f.SrcVersion)
	b = appendString(b, f.Version)
	b = binary.BigEndian.AppendUint64(b, uint64(f.TimeoutMs))
	b = appendString(b, f.Verbosity)
	return b
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

func appendString(b []byte, s string) []byte {
	b = binary.BigEndian.AppendUint64(b, uint64(len(s)))
	return append(b, s...)
}

func appendStrings(b []byte, ss []string) []byte {
	b = binary.BigEndian.AppendUint64(b, uint64(len(ss)))
	for _, s := range ss {
		b = appendString(b, s)
	}
	return b
}
