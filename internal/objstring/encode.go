// Package objstring encodes placed objects into the level editor's object
// string format: comma-separated key/value pairs terminated by a semicolon,
// one token per object, concatenated with no other separator.
//
// Each token has the shape
//
//	1,<type>,2,<x>,3,<y>,41,1,67,1,43,<h>a<s>a<v>a1a1,128,<scaleX>,129,<scaleY>;
//
// Key 1 is the object type, 2 and 3 the position, 41 and 67 enable the HSV
// override on the base and detail color channels, 43 carries the HSV tuple
// with both the absolute-saturation and absolute-brightness flags set, and
// 128/129 are the independent X/Y scale factors.
package objstring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
)

// DefaultObjectID is the editor's plain square tile.
const DefaultObjectID = 211

// ErrNonFinite is returned when an object carries a NaN, an infinity, or a
// number too large for single precision.
var ErrNonFinite = errors.New("non-finite value in object")

// Object is one object to encode.
type Object struct {
	TypeID int
	X, Y   float64
	HSV    imaging.HSV
	ScaleX float64
	ScaleY float64
}

// AppendToken appends the token for o to dst.
func AppendToken(dst []byte, o Object) ([]byte, error) {
	for _, v := range [...]float64{o.X, o.Y, o.HSV.H, o.HSV.S, o.HSV.V, o.ScaleX, o.ScaleY} {
		// Values are printed at single precision, so anything beyond the
		// float32 range is as unusable as an infinity.
		if f := float64(float32(v)); math.IsNaN(f) || math.IsInf(f, 0) {
			return dst, fmt.Errorf("object type %d at (%v,%v): %w", o.TypeID, o.X, o.Y, ErrNonFinite)
		}
	}

	dst = append(dst, "1,"...)
	dst = strconv.AppendInt(dst, int64(o.TypeID), 10)
	dst = append(dst, ",2,"...)
	dst = appendNum(dst, o.X)
	dst = append(dst, ",3,"...)
	dst = appendNum(dst, o.Y)
	dst = append(dst, ",41,1,67,1,43,"...)
	dst = appendNum(dst, o.HSV.H)
	dst = append(dst, 'a')
	dst = appendNum(dst, o.HSV.S)
	dst = append(dst, 'a')
	dst = appendNum(dst, o.HSV.V)
	dst = append(dst, "a1a1,128,"...)
	dst = appendNum(dst, o.ScaleX)
	dst = append(dst, ",129,"...)
	dst = appendNum(dst, o.ScaleY)
	dst = append(dst, ';')
	return dst, nil
}

// Encode returns the token for a single object.
func Encode(o Object) (string, error) {
	b, err := AppendToken(make([]byte, 0, 96), o)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// appendNum formats v at the editor's single precision, using the shortest
// decimal that reads back as the same float32 and never an exponent.
func appendNum(dst []byte, v float64) []byte {
	f := float32(v)
	if f == 0 {
		// Drop the sign of negative zero.
		f = 0
	}
	return strconv.AppendFloat(dst, float64(f), 'f', -1, 32)
}

// Builder accumulates tokens into one object string.
//
// The zero value is ready to use.
type Builder struct {
	buf   []byte
	count int
}

// Add appends the token for o. On error nothing is appended.
func (b *Builder) Add(o Object) error {
	n := len(b.buf)
	buf, err := AppendToken(b.buf, o)
	if err != nil {
		b.buf = b.buf[:n]
		return err
	}
	b.buf = buf
	b.count++
	return nil
}

// Len returns the number of objects added.
func (b *Builder) Len() int {
	return b.count
}

// String returns the concatenated tokens.
func (b *Builder) String() string {
	return string(b.buf)
}

// Reset empties the builder, keeping its storage.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.count = 0
}

// Count returns the number of tokens in an object string.
func Count(s string) int {
	return strings.Count(s, ";")
}
