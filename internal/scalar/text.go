package scalar

// MarshalText implements encoding.TextMarshaler for Verbosity.
func (v Verbosity) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (r Redirect) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (s CharStreamSource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
