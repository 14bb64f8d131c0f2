package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/javy001/trainingplanner/internal/adapters/repository"
	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/sport"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 7, 0, 0, 0, time.UTC)
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty in-memory store", t, func() {
		store := repository.NewMemoryStore()

		Convey("Listing yields no workouts", func() {
			out, err := store.ListWorkouts(ctx)
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("When a workout without an ID is inserted", func() {
			stored, err := store.Insert(ctx, model.Workout{
				Date:          day(2),
				Sport:         sport.Running,
				DurationHours: 1.0,
				DistanceMiles: 6.0,
			})
			So(err, ShouldBeNil)

			Convey("It is assigned a fresh ID", func() {
				So(stored.ID, ShouldNotBeEmpty)
			})

			Convey("It can be fetched back", func() {
				got, err := store.GetWorkout(ctx, stored.ID)
				So(err, ShouldBeNil)
				So(got.DurationHours, ShouldEqual, 1.0)
				So(got.Sport, ShouldEqual, sport.Running)
				So(got.SportName, ShouldEqual, "running")
			})

			Convey("Updating it changes only the set fields", func() {
				dist := 6.5
				got, err := store.Update(ctx, stored.ID, model.WorkoutUpdate{DistanceMiles: &dist})
				So(err, ShouldBeNil)
				So(got.DistanceMiles, ShouldEqual, 6.5)
				So(got.DurationHours, ShouldEqual, 1.0)
			})

			Convey("Deleting it removes it", func() {
				So(store.Delete(ctx, stored.ID), ShouldBeNil)
				_, err := store.GetWorkout(ctx, stored.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("Fetching an unknown ID reports not found", func() {
			_, err := store.GetWorkout(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Updating an unknown ID reports not found", func() {
			notes := "hi"
			_, err := store.Update(ctx, "nope", model.WorkoutUpdate{Notes: &notes})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Deleting an unknown ID reports not found", func() {
			So(errors.Is(store.Delete(ctx, "nope"), repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Inserting a duplicate ID is rejected", func() {
			_, err := store.Insert(ctx, model.Workout{ID: "w1", Date: day(2), Sport: sport.Cycling})
			So(err, ShouldBeNil)
			_, err = store.Insert(ctx, model.Workout{ID: "w1", Date: day(3), Sport: sport.Cycling})
			So(errors.Is(err, repository.ErrInvalidWorkout), ShouldBeTrue)
		})
	})
}

func TestMemoryStoreOrdering(t *testing.T) {
	ctx := context.Background()

	Convey("Given workouts inserted in a known order", t, func() {
		n := 0
		store := repository.NewMemoryStore(repository.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("w%d", n)
		}))

		for d := 1; d <= 5; d++ {
			_, err := store.Insert(ctx, model.Workout{Date: day(d), Sport: sport.Running})
			So(err, ShouldBeNil)
		}

		Convey("Listing preserves insertion order", func() {
			out, err := store.ListWorkouts(ctx)
			So(err, ShouldBeNil)
			So(len(out), ShouldEqual, 5)
			for i, w := range out {
				So(w.ID, ShouldEqual, fmt.Sprintf("w%d", i+1))
			}
		})

		Convey("Deleting from the middle keeps the rest in order", func() {
			So(store.Delete(ctx, "w3"), ShouldBeNil)
			out, err := store.ListWorkouts(ctx)
			So(err, ShouldBeNil)
			ids := make([]string, 0, len(out))
			for _, w := range out {
				ids = append(ids, w.ID)
			}
			So(ids, ShouldResemble, []string{"w1", "w2", "w4", "w5"})
		})
	})
}

func TestMemoryStoreApplyUpserts(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with one workout", t, func() {
		store := repository.NewMemoryStore()
		existing, err := store.Insert(ctx, model.Workout{
			Date:          day(4),
			Sport:         sport.Swimming,
			DurationHours: 0.5,
		})
		So(err, ShouldBeNil)

		Convey("A batch of one insert and one update applies atomically", func() {
			dur := 0.6
			batch := []model.Upsert{
				model.NewInsert(model.Workout{
					Date:             day(5),
					Sport:            sport.Running,
					DurationHours:    1.2,
					ExternalSourceID: "ext-1",
				}),
				model.NewUpdate(existing.ID, model.WorkoutUpdate{DurationHours: &dur}),
			}

			So(store.ApplyUpserts(ctx, batch), ShouldBeNil)
			So(store.Count(ctx), ShouldEqual, 2)

			got, err := store.GetWorkout(ctx, existing.ID)
			So(err, ShouldBeNil)
			So(got.DurationHours, ShouldEqual, 0.6)
		})

		Convey("A batch touching an unknown workout leaves the store untouched", func() {
			dur := 9.0
			batch := []model.Upsert{
				model.NewInsert(model.Workout{Date: day(6), Sport: sport.Cycling}),
				model.NewUpdate("missing", model.WorkoutUpdate{DurationHours: &dur}),
			}

			So(errors.Is(store.ApplyUpserts(ctx, batch), repository.ErrNotFound), ShouldBeTrue)
			So(store.Count(ctx), ShouldEqual, 1)
		})

		Convey("A batch with a clashing preset insert ID leaves the store untouched", func() {
			batch := []model.Upsert{
				model.NewInsert(model.Workout{ID: "fresh", Date: day(6), Sport: sport.Cycling}),
				model.NewInsert(model.Workout{ID: existing.ID, Date: day(6), Sport: sport.Running}),
			}

			So(errors.Is(store.ApplyUpserts(ctx, batch), repository.ErrInvalidWorkout), ShouldBeTrue)
			So(store.Count(ctx), ShouldEqual, 1)
		})

		Convey("A batch repeating a preset insert ID leaves the store untouched", func() {
			batch := []model.Upsert{
				model.NewInsert(model.Workout{ID: "twice", Date: day(6), Sport: sport.Cycling}),
				model.NewInsert(model.Workout{ID: "twice", Date: day(6), Sport: sport.Running}),
			}

			So(errors.Is(store.ApplyUpserts(ctx, batch), repository.ErrInvalidWorkout), ShouldBeTrue)
			So(store.Count(ctx), ShouldEqual, 1)
		})

		Convey("An empty batch is a no-op", func() {
			So(store.ApplyUpserts(ctx, nil), ShouldBeNil)
			So(store.Count(ctx), ShouldEqual, 1)
		})
	})
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	ctx := context.Background()

	Convey("Given a listed snapshot", t, func() {
		store := repository.NewMemoryStore()
		stored, err := store.Insert(ctx, model.Workout{Date: day(1), Sport: sport.Running, Notes: "easy"})
		So(err, ShouldBeNil)

		snap, err := store.ListWorkouts(ctx)
		So(err, ShouldBeNil)

		Convey("Mutating the snapshot does not affect the store", func() {
			snap[0].Notes = "changed"
			got, err := store.GetWorkout(ctx, stored.ID)
			So(err, ShouldBeNil)
			So(got.Notes, ShouldEqual, "easy")
		})
	})
}
