package scoring_test

import (
	"testing"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/scoring"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	. "github.com/smartystreets/goconvey/convey"
)

func weddingEvent() *entity.Event {
	return &entity.Event{
		EventType:     valueobject.EventTypeCasamento,
		GuestCount:    100,
		City:          "Campinas",
		State:         "SP",
		CuisineStyles: []string{"Italiana"},
	}
}

func chefProfile() *entity.ProfessionalProfile {
	return &entity.ProfessionalProfile{
		DisplayName:   "Chef Rita",
		CuisineStyles: []string{"Italiana", "Francesa"},
		EventTypes:    []valueobject.EventType{valueobject.EventTypeCasamento},
		CapacityTiers: []string{"50-150"},
		City:          "campinas",
		Rating:        5,
	}
}

func TestScore(t *testing.T) {
	Convey("Given a wedding event and a matching chef", t, func() {
		event := weddingEvent()
		profile := chefProfile()

		Convey("When scoring", func() {
			result := scoring.Score(event, profile)

			Convey("Then cuisine, event type, capacity, locality and rating add up to 80", func() {
				So(result.Score, ShouldEqual, 80)
				So(result.Breakdown.Cuisine, ShouldEqual, 20)
				So(result.Breakdown.EventType, ShouldEqual, 15)
				So(result.Breakdown.Capacity, ShouldEqual, 15)
				So(result.Breakdown.Locality, ShouldEqual, 15)
				So(result.Breakdown.Budget, ShouldEqual, 0)
				So(result.Breakdown.Rating, ShouldEqual, 15)
			})

			Convey("And reasons follow cuisine, event type, locality order", func() {
				So(result.Reasons, ShouldResemble, []string{
					"Especialista em Italiana",
					"Experiência com casamentos",
					"Atende em Campinas",
				})
			})

			Convey("And repeated calls are identical", func() {
				for i := 0; i < 10; i++ {
					So(scoring.Score(event, profile), ShouldResemble, result)
				}
			})
		})

		Convey("When the event has no cuisine preferences", func() {
			event.CuisineStyles = nil
			result := scoring.Score(event, profile)

			Convey("Then the cuisine term contributes nothing", func() {
				So(result.Breakdown.Cuisine, ShouldEqual, 0)
				So(result.Score, ShouldEqual, 60)
				So(result.Reasons, ShouldNotContain, "Especialista em Italiana")
			})
		})

		Convey("When only part of the cuisines overlap", func() {
			event.CuisineStyles = []string{"Italiana", "Japonesa"}
			profile.CuisineStyles = []string{"ITALIANA"}
			result := scoring.Score(event, profile)

			Convey("Then the cuisine term is proportional and uses the event spelling", func() {
				So(result.Breakdown.Cuisine, ShouldEqual, 10)
				So(result.Reasons[0], ShouldEqual, "Especialista em Italiana")
			})
		})

		Convey("When price ranges are partly malformed", func() {
			event.PriceRange = valueobject.PriceRange20kTo50k
			event.MaxBudget = event.PriceRange.MaxBudget()
			profile.PriceRanges = []string{"abc", "10-5", "R$ 40.000 - R$ 60.000"}
			result := scoring.Score(event, profile)

			Convey("Then malformed entries are skipped and the valid one matches", func() {
				So(result.Breakdown.Budget, ShouldEqual, 20)
				So(result.Score, ShouldEqual, 100)
			})
		})

		Convey("When the event declares no budget", func() {
			profile.PriceRanges = []string{"0-100000"}
			result := scoring.Score(event, profile)

			Convey("Then the budget term is zero", func() {
				So(result.Breakdown.Budget, ShouldEqual, 0)
			})
		})

		Convey("When the professional does not fit at all", func() {
			profile = &entity.ProfessionalProfile{City: "Recife", CapacityTiers: []string{"até 30"}}
			result := scoring.Score(event, profile)

			Convey("Then the score is zero with no reasons", func() {
				So(result.Score, ShouldEqual, 0)
				So(result.Reasons, ShouldBeEmpty)
			})
		})

		Convey("When the rating is out of range", func() {
			profile.Rating = 9
			result := scoring.Score(event, profile)

			Convey("Then the score stays within bounds", func() {
				So(result.Score, ShouldBeLessThanOrEqualTo, scoring.MaxScore)
				So(result.Breakdown.Rating, ShouldEqual, scoring.RatingWeight)
			})
		})
	})
}

func TestBrowseScore(t *testing.T) {
	Convey("Given an open event and a professional browsing the feed", t, func() {
		event := weddingEvent()
		event.CuisineStyles = []string{"Italiana", "Japonesa"}
		event.ServiceTypes = []string{"Buffet"}
		profile := chefProfile()
		profile.ServiceTypes = []string{"buffet"}

		Convey("When computing the match percentage", func() {
			Convey("Then it adds proportional overlaps and capacity to the base", func() {
				So(scoring.BrowseScore(event, profile), ShouldEqual, 88)
			})
		})

		Convey("When nothing overlaps", func() {
			empty := &entity.ProfessionalProfile{}

			Convey("Then only the base remains", func() {
				So(scoring.BrowseScore(event, empty), ShouldEqual, 50)
			})
		})

		Convey("When rating and city change", func() {
			before := scoring.BrowseScore(event, profile)
			profile.Rating = 0
			profile.City = "Manaus"

			Convey("Then the browse percentage ignores them", func() {
				So(scoring.BrowseScore(event, profile), ShouldEqual, before)
			})
		})
	})
}
