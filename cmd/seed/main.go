// Command main runs the database seeder for VIP Gate.
package main

import (
	"flag"
	"log"

	"vipgate/internal/config"
	"vipgate/internal/database"
	"vipgate/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numVipUsers := flag.Int("vip-users", 15, "Number of VIP users to create")
	numFree := flag.Int("free-items", 120, "Number of free content items to create")
	numVip := flag.Int("vip-items", 60, "Number of VIP content items to create")
	numRecs := flag.Int("recommendations", 25, "Number of recommendations to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeder preset (e.g., Demo)")
	presetsFile := flag.String("presets-file", "seed_presets.yml", "Optional YAML file with extra presets")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)", *preset)
		if err := s.ApplyPreset(*preset, *presetsFile); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
		log.Println("Seeding complete")
		return
	}

	if err := seed.BuiltIns(database.DB); err != nil {
		log.Fatalf("Built-in content seeding failed: %v", err)
	}

	if err := s.Run(seed.Options{
		NumUsers:     *numUsers,
		NumVipUsers:  *numVipUsers,
		NumFreeItems: *numFree,
		NumVipItems:  *numVip,
		NumRecs:      *numRecs,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
