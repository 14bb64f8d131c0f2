package sport_test

import (
	"testing"

	"github.com/javy001/trainingplanner/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSportNames(t *testing.T) {
	Convey("Given the closed sport set", t, func() {
		Convey("Then All should list the three sports in display order", func() {
			all := sport.All()
			So(all, ShouldResemble, []sport.Sport{sport.Running, sport.Cycling, sport.Swimming})
		})

		Convey("Then each supported sport should have a display name", func() {
			So(sport.Running.String(), ShouldEqual, "Running")
			So(sport.Cycling.String(), ShouldEqual, "Cycling")
			So(sport.Swimming.String(), ShouldEqual, "Swimming")
			So(sport.Unknown.String(), ShouldEqual, "")
		})

		Convey("And Supported should exclude Unknown", func() {
			So(sport.Running.Supported(), ShouldBeTrue)
			So(sport.Unknown.Supported(), ShouldBeFalse)
		})
	})
}

func TestFromName(t *testing.T) {
	Convey("Given stored sport names", t, func() {
		Convey("Then canonical names should round-trip", func() {
			for _, s := range sport.All() {
				So(sport.FromName(s.String()), ShouldEqual, s)
			}
		})

		Convey("And unrecognized names should map to Unknown", func() {
			So(sport.FromName("Lifting"), ShouldEqual, sport.Unknown)
			So(sport.FromName(""), ShouldEqual, sport.Unknown)
		})
	})
}

func TestFromActivityType(t *testing.T) {
	Convey("Given provider activity types", t, func() {
		cases := map[string]sport.Sport{
			"running":             sport.Running,
			"Run":                 sport.Running,
			"ride":                sport.Cycling,
			"cycling":             sport.Cycling,
			"swim":                sport.Swimming,
			"open_water_swimming": sport.Swimming,
			" Swimming ":          sport.Swimming,
			"yoga":                sport.Unknown,
			"":                    sport.Unknown,
		}

		Convey("Then each should map to the expected sport", func() {
			for in, want := range cases {
				So(sport.FromActivityType(in), ShouldEqual, want)
			}
		})
	})
}
