package ostream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FormatTestSuite struct {
	suite.Suite
	writer *TextWriter
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *FormatTestSuite) SetupTest() {
	s.writer = NewTextWriter()
}

func (s *FormatTestSuite) TestIntegerBases() {
	cases := []struct {
		name string
		base int
		want string
	}{
		{"Hexadecimal", 16, "FF"},
		{"Octal", 8, "377"},
		{"Decimal", 10, "255"},
	}
	for _, tc := range cases {
		s.T().Run(tc.name, func(t *testing.T) {
			w := NewTextWriter()
			w.SetBase(tc.base)
			w.WriteUint32(255)
			require.NoError(t, w.Err())
			assert.Equal(t, tc.want, w.String())
		})
	}
}

func (s *FormatTestSuite) TestBaseControlTokens() {
	w := s.writer
	w.WriteFlags(Hex)
	s.Assert().Equal(16, w.Base())
	w.WriteUint64(255)

	w.WriteFlags(Oct)
	s.Assert().Equal(8, w.Base())
	w.WriteUint64(255)

	w.WriteFlags(Dec)
	s.Assert().Equal(10, w.Base())
	w.WriteUint64(255)

	s.Require().NoError(w.Err())
	s.Assert().Equal("FF377255", w.String())
}

func (s *FormatTestSuite) TestWidthAndJustification() {
	w := s.writer
	w.SetWidth(5)
	w.WriteInt32(42)
	s.Assert().Equal("   42", w.String())

	w.WriteFlags(Left)
	w.WriteInt32(42)
	s.Require().NoError(w.Err())
	s.Assert().Equal("   4242   ", w.String())
}

func (s *FormatTestSuite) TestWidthClamping() {
	w := s.writer
	w.SetWidth(-1)
	s.Assert().Zero(w.Width(), "negative widths collapse to zero")
	w.WriteInt32(42)
	s.Assert().Equal("42", w.String(), "a clamped width must not pad")

	w.SetWidth(maxFieldWidth + 1)
	s.Assert().Equal(maxFieldWidth, w.Width())
}

func (s *FormatTestSuite) TestJustificationFlagsAreExclusive() {
	w := s.writer
	w.WriteFlags(Left)
	w.WriteFlags(Right)
	s.Assert().Equal(Right, w.Flags()&(Left|Right), "last justification write wins")

	w.WriteFlags(Left)
	s.Assert().Equal(Left, w.Flags()&(Left|Right))

	// Other flag values are additive.
	w.WriteFlags(Showpos)
	s.Assert().Equal(Left|Showpos, w.Flags()&(Left|Right|Showpos))
}

func (s *FormatTestSuite) TestFloatPrecision() {
	w := s.writer
	w.SetPrecision(2)
	w.WriteFloat64(3.14159)
	s.Require().NoError(w.Err())
	s.Assert().Equal("3.14", w.String())
}

func (s *FormatTestSuite) TestFloat32() {
	w := s.writer
	w.SetPrecision(1)
	w.WriteFloat32(2.5)
	s.Assert().Equal("2.5", w.String())
}

func (s *FormatTestSuite) TestScientificNotation() {
	w := s.writer
	w.WriteFlags(Scientific)
	w.WriteFloat64(12345.678)
	s.Require().NoError(w.Err())
	s.Assert().Equal("1.23E+04", w.String())
}

func (s *FormatTestSuite) TestDecimalSeparator() {
	w := s.writer
	w.SetDecimalSeparator(',')
	w.WriteFloat64(3.14159)
	s.Require().NoError(w.Err())
	s.Assert().Equal("3,14", w.String())
}

func (s *FormatTestSuite) TestSeparatorsAreState() {
	w := s.writer
	s.Assert().Equal(byte('.'), w.DecimalSeparator())
	s.Assert().Equal(byte(','), w.ThousandsSeparator())

	w.SetThousandsSeparator('_')
	s.Assert().Equal(byte('_'), w.ThousandsSeparator())

	// Digit grouping is carried as state, not applied to output.
	w.WriteUint32(1234567)
	s.Assert().Equal("1234567", w.String())
}

func (s *FormatTestSuite) TestFormat() {
	w := s.writer
	n := w.Format("%d-%d", 1, 2)
	s.Require().NoError(w.Err())
	s.Assert().Equal(3, n)
	s.Assert().Equal(3, w.Pos())
	s.Assert().Equal("1-2", w.String())
}

func (s *FormatTestSuite) TestFormatWouldHaveWritten() {
	region := make([]byte, 4)
	w := NewTextWriter()
	w.Link(region)

	n := w.Format("%d", 123456)
	s.Assert().Equal(6, n, "Format reports the size the output required")
	s.Assert().Equal(4, w.Pos(), "the cursor advances by what was actually written")
	s.Assert().Equal("1234", string(region))
	s.Assert().ErrorIs(w.Err(), ErrStreamBounds)
}

func (s *FormatTestSuite) TestNegativeIntegers() {
	w := s.writer
	w.WriteInt64(-42)
	s.Assert().Equal("-42", w.String())
}

func (s *FormatTestSuite) TestFlagsPersistAcrossFlush() {
	w := s.writer
	w.WriteFlags(Hex)
	w.SetWidth(4)
	w.WriteUint32(255)
	w.Flush()

	s.Assert().Equal(16, w.Base())
	s.Assert().Equal(4, w.Width())

	w.WriteUint32(255)
	s.Assert().Equal("  FF  FF", w.String())
}

func (s *FormatTestSuite) TestPatternSynthesis() {
	cases := []struct {
		name string
		key  fmtKey
		want string
	}{
		{"PlainDecimal", fmtKey{kind: fmtInteger, base: 10}, "%d"},
		{"HexWidthLeft", fmtKey{kind: fmtInteger, base: 16, width: 5, flags: Left}, "%-5X"},
		{"OctalWidth", fmtKey{kind: fmtInteger, base: 8, width: 3}, "%3o"},
		{"FixedPoint", fmtKey{kind: fmtFloat, prec: 2}, "%.2f"},
		{"Scientific", fmtKey{kind: fmtFloat, prec: 3, flags: Scientific}, "%.3E"},
		{"UnknownBaseFallsBackToDecimal", fmtKey{kind: fmtInteger, base: 3}, "%d"},
	}
	for _, tc := range cases {
		s.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, synthesizePattern(tc.key))
		})
	}
}

func TestFormatSuite(t *testing.T) {
	suite.Run(t, new(FormatTestSuite))
}
