// path: seed/seed.go

// Package seed loads the sample data set used for demos and local
// development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// SystemUser is the createdBy value of seeded documents when no caller is
// known (the `seed` command).
const SystemUser = "system"

type Summary struct {
	Species        int `json:"species"`
	Methods        int `json:"methods"`
	Locations      int `json:"locations"`
	MonitoringData int `json:"monitoringData"`
}

// Load empties the species, method, location and monitoring data
// collections and inserts the sample set. Users are left alone.
func Load(ctx context.Context, repo store.Repository, createdBy string, now time.Time) (Summary, error) {
	if createdBy == "" {
		createdBy = SystemUser
	}
	audit := models.Audit{CreatedBy: createdBy, CreatedAt: now, UpdatedAt: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return repo.Species().DeleteAll(gctx) })
	g.Go(func() error { return repo.Methods().DeleteAll(gctx) })
	g.Go(func() error { return repo.Locations().DeleteAll(gctx) })
	g.Go(func() error { return repo.Observations().DeleteAll(gctx) })
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("seed: clear collections: %w", err)
	}

	species := sampleSpecies()
	for i := range species {
		species[i].ID = primitive.NewObjectID()
		species[i].Audit = audit
		if err := insert(ctx, repo.Species(), &species[i]); err != nil {
			return Summary{}, err
		}
	}
	methods := sampleMethods()
	for i := range methods {
		methods[i].ID = primitive.NewObjectID()
		methods[i].Audit = audit
		if err := insert(ctx, repo.Methods(), &methods[i]); err != nil {
			return Summary{}, err
		}
	}
	locations := sampleLocations()
	for i := range locations {
		locations[i].ID = primitive.NewObjectID()
		locations[i].Audit = audit
		if err := insert(ctx, repo.Locations(), &locations[i]); err != nil {
			return Summary{}, err
		}
	}

	data := sampleData(species, methods, locations)
	for i := range data {
		data[i].ID = primitive.NewObjectID()
		data[i].Audit = audit
		if err := insert(ctx, repo.Observations(), &data[i]); err != nil {
			return Summary{}, err
		}
	}

	return Summary{
		Species:        len(species),
		Methods:        len(methods),
		Locations:      len(locations),
		MonitoringData: len(data),
	}, nil
}

type validated interface {
	Validate() error
}

func insert[T any, PT interface {
	*T
	validated
}](ctx context.Context, col store.Collection[T], doc PT) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("seed: invalid sample %T: %w", doc, err)
	}
	if err := col.Insert(ctx, (*T)(doc)); err != nil {
		return fmt.Errorf("seed: insert %T: %w", doc, err)
	}
	return nil
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleSpecies() []models.Species {
	return []models.Species{
		{
			Name:               "Keel-billed Toucan",
			ScientificName:     "Ramphastos sulfuratus",
			Description:        str("Tropical bird known for its large, brightly coloured bill."),
			ConservationStatus: models.LeastConcern,
			Habitat:            str("Tropical rainforest and humid woodland"),
		},
		{
			Name:               "Spectacled Bear",
			ScientificName:     "Tremarctos ornatus",
			Description:        str("The only bear native to South America, with distinctive facial markings."),
			ConservationStatus: models.Vulnerable,
			Habitat:            str("Andean cloud forest"),
		},
		{
			Name:               "Jaguar",
			ScientificName:     "Panthera onca",
			Description:        str("Largest cat of the Americas, known for its powerful bite and swimming."),
			ConservationStatus: models.NearThreatened,
			Habitat:            str("Rainforest, wetlands and savanna"),
		},
		{
			Name:               "Resplendent Quetzal",
			ScientificName:     "Pharomachrus mocinno",
			Description:        str("Tropical bird with iridescent plumage; males carry long tail streamers."),
			ConservationStatus: models.NearThreatened,
			Habitat:            str("Montane cloud forest"),
		},
		{
			Name:               "Golden Poison Frog",
			ScientificName:     "Phyllobates aurotaenia",
			Description:        str("Small poison frog endemic to Colombia, known for its bright colours."),
			ConservationStatus: models.Endangered,
			Habitat:            str("Humid tropical rainforest"),
		},
		{
			Name:               "West Indian Manatee",
			ScientificName:     "Trichechus manatus",
			Description:        str("Herbivorous marine mammal of warm coastal waters."),
			ConservationStatus: models.Vulnerable,
			Habitat:            str("Coastal waters, rivers and estuaries"),
		},
	}
}

func sampleMethods() []models.MonitoringMethod {
	return []models.MonitoringMethod{
		{
			Name:           "GPS Telemetry",
			Type:           models.MethodAI,
			Description:    "Tracking animals with GPS collars to study their movements.",
			Applications:   []string{"Migration studies", "Movement patterns", "Habitat use"},
			Accuracy:       num(95),
			CostEfficiency: models.CostMedium,
			Equipment:      []string{"GPS collars", "Receivers", "Analysis software"},
		},
		{
			Name:           "Satellite Image Analysis",
			Type:           models.MethodRemoteSensing,
			Description:    "Satellite imagery to monitor habitat change and species distribution.",
			Applications:   []string{"Habitat mapping", "Deforestation detection", "Vegetation cover analysis"},
			Accuracy:       num(85),
			CostEfficiency: models.CostHigh,
			Equipment:      []string{"Satellites", "GIS software", "Workstations"},
		},
		{
			Name:           "AI Camera Traps",
			Type:           models.MethodAI,
			Description:    "Automatic cameras with machine-learning species recognition.",
			Applications:   []string{"Population counts", "Behaviour studies", "Night monitoring"},
			Accuracy:       num(94),
			CostEfficiency: models.CostMedium,
			Equipment:      []string{"Camera traps", "AI models", "Solar batteries"},
		},
		{
			Name:           "Environmental DNA Analysis",
			Type:           models.MethodMolecular,
			Description:    "Detecting species from DNA present in environmental samples.",
			Applications:   []string{"Rare species detection", "Aquatic monitoring", "Microbial biodiversity"},
			Accuracy:       num(92),
			CostEfficiency: models.CostLow,
			Equipment:      []string{"DNA extraction kits", "Sequencers", "Laboratory"},
		},
		{
			Name:           "Drone and LiDAR Mapping",
			Type:           models.MethodGIS,
			Description:    "Drones carrying LiDAR sensors for detailed ecosystem mapping.",
			Applications:   []string{"3D forest mapping", "Tree counts", "Forest structure analysis"},
			Accuracy:       num(88),
			CostEfficiency: models.CostMedium,
			Equipment:      []string{"Drones", "LiDAR sensors", "Processing software"},
		},
	}
}

func sampleLocations() []models.Location {
	return []models.Location{
		{
			Name:             "Yasuní National Park",
			Coordinates:      models.Coordinates{Latitude: -0.6833, Longitude: -76.4},
			Description:      str("One of the most biodiverse places on the planet."),
			Ecosystem:        models.Forest,
			Area:             num(9823),
			ProtectionStatus: models.Protected,
			Country:          "Ecuador",
			Region:           str("Amazon"),
		},
		{
			Name:             "Corcovado National Park",
			Coordinates:      models.Coordinates{Latitude: 8.5167, Longitude: -83.5833},
			Description:      str("One of the most biodiverse areas in the world."),
			Ecosystem:        models.Forest,
			Area:             num(424),
			ProtectionStatus: models.Protected,
			Country:          "Costa Rica",
			Region:           str("Osa Peninsula"),
		},
		{
			Name:             "Maya Biosphere Reserve",
			Coordinates:      models.Coordinates{Latitude: 17.25, Longitude: -89.75},
			Description:      str("Protected rainforest with Maya archaeological sites."),
			Ecosystem:        models.Forest,
			Area:             num(21602),
			ProtectionStatus: models.Protected,
			Country:          "Guatemala",
			Region:           str("Petén"),
		},
		{
			Name:             "Mesoamerican Reef",
			Coordinates:      models.Coordinates{Latitude: 18, Longitude: -87},
			Description:      str("The second largest coral reef system in the world."),
			Ecosystem:        models.Marine,
			Area:             num(1000),
			ProtectionStatus: models.PartiallyProtected,
			Country:          "Mexico",
			Region:           str("Mexican Caribbean"),
		},
		{
			Name:             "Iberá Wetlands",
			Coordinates:      models.Coordinates{Latitude: -28, Longitude: -57},
			Description:      str("Wetland system important for migratory birds."),
			Ecosystem:        models.Freshwater,
			Area:             num(13000),
			ProtectionStatus: models.Protected,
			Country:          "Argentina",
			Region:           str("Corrientes"),
		},
	}
}

func sampleData(species []models.Species, methods []models.MonitoringMethod, locations []models.Location) []models.MonitoringData {
	return []models.MonitoringData{
		{
			SpeciesID:   species[0].ID,
			MethodID:    methods[0].ID,
			LocationID:  locations[0].ID,
			Date:        day("2023-05-15"),
			Value:       12,
			Unit:        "individuals",
			Researcher:  "Dr. Ana López",
			Notes:       str("Sighted during the morning census"),
			DataQuality: models.QualityHigh,
			Confidence:  90,
			Weather:     &models.Weather{Temperature: num(28), Humidity: num(60), Conditions: str("Sunny")},
			Attachments: []models.Attachment{},
		},
		{
			SpeciesID:   species[1].ID,
			MethodID:    methods[1].ID,
			LocationID:  locations[1].ID,
			Date:        day("2023-06-20"),
			Value:       8,
			Unit:        "individuals",
			Researcher:  "Dr. Carlos Méndez",
			Notes:       str("Recorded by camera traps"),
			DataQuality: models.QualityMedium,
			Confidence:  75,
			Weather:     &models.Weather{Temperature: num(25), Humidity: num(80), Conditions: str("Partly cloudy")},
			Attachments: []models.Attachment{},
		},
	}
}
