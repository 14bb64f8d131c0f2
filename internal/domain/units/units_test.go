package units_test

import (
	"testing"

	"github.com/javy001/trainingplanner/internal/domain/units"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistanceConversions(t *testing.T) {
	Convey("Given the canonical conversion factors", t, func() {
		Convey("Then meters should convert to miles", func() {
			So(units.MetersToMiles(1609.34), ShouldAlmostEqual, 1.0, 1e-9)
			So(units.MetersToMiles(0), ShouldEqual, 0)
		})

		Convey("And miles to meters should invert it", func() {
			So(units.MilesToMeters(units.MetersToMiles(5000)), ShouldAlmostEqual, 5000, 1e-6)
		})

		Convey("And miles should convert to kilometers and back", func() {
			So(units.MilesToKm(1), ShouldAlmostEqual, 1.60934, 1e-9)
			So(units.KmToMiles(units.MilesToKm(3.1)), ShouldAlmostEqual, 3.1, 1e-9)
		})

		Convey("And miles should convert to yards", func() {
			So(units.MilesToYards(1), ShouldEqual, 1760)
			So(units.MilesToYards(0.5), ShouldEqual, 880)
		})
	})
}

func TestFormatCompact(t *testing.T) {
	Convey("Given display values", t, func() {
		cases := map[float64]string{
			0:         "0",
			5:         "5",
			5.25:      "5.3",
			999:       "999",
			1000:      "1K",
			1500:      "1.5K",
			1_000_000: "1M",
			2_340_000: "2.3M",
		}

		Convey("Then each should format compactly", func() {
			for in, want := range cases {
				So(units.FormatCompact(in), ShouldEqual, want)
			}
		})
	})
}
