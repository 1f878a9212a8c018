package animation

import (
	"fmt"
	"strings"

	"github.com/milk9111/topdown/movement"
)

// Family is a group of clips that share frame counts and timing, one sheet per
// direction.
type Family uint8

const (
	Idle Family = iota
	Walk
	Run
	Attack
)

var Families = [...]Family{Idle, Walk, Run, Attack}

func (f Family) String() string {
	switch f {
	case Idle:
		return "idle"
	case Walk:
		return "walk"
	case Run:
		return "run"
	case Attack:
		return "attack"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}

func ParseFamily(name string) (Family, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Families {
		if f.String() == clean {
			return f, nil
		}
	}
	return 0, fmt.Errorf("animation: unknown family %q", name)
}

// Key addresses one clip in a Library.
type Key struct {
	Family    Family
	Direction movement.Direction
}

func (k Key) String() string {
	return k.Family.String() + "/" + k.Direction.String()
}
