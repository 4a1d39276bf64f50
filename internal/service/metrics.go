package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Instruments come from the global meter, so they start exporting once
// telemetry.Initialize installs a provider and are no-ops before that.
var (
	meter = otel.Meter("totality/service")

	catalogSeeded = mustCounter("library.catalog.seeded", "Catalog exercises written by the seeder")
	customCreated = mustCounter("library.exercises.created", "User-created exercises")
	customDeleted = mustCounter("library.exercises.deleted", "User-created exercises deleted")
	setsLogged    = mustCounter("library.sets.logged", "Logged sets by set type")
)

func mustCounter(name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(err)
	}
	return c
}
