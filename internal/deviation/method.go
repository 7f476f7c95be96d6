package deviation

import (
	"fmt"
	"strings"
)

// Method selects how flow angles become metal angles.
type Method int

const (
	MethodJohnsenBullock Method = iota
	// MethodEqualsFlowAngles uses the flow angles directly, with zero
	// incidence and deviation.
	MethodEqualsFlowAngles
)

var methodNames = map[Method]string{
	MethodJohnsenBullock:   "johnsen_bullock",
	MethodEqualsFlowAngles: "equals_flow_angles",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func Methods() []Method { return []Method{MethodJohnsenBullock, MethodEqualsFlowAngles} }

func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Solve computes the metal angles of one stream.
func (m Method) Solve(jb JohnsenBullock, iterations int) (MetalAngles, error) {
	switch m {
	case MethodJohnsenBullock:
		return jb.MetalAngles(iterations)
	case MethodEqualsFlowAngles:
		return NewMetalAngles(jb.Beta1, jb.Beta2, 0, 0), nil
	}
	return MetalAngles{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
}
