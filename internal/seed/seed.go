package seed

import (
	"fmt"
	"log"
	"os"

	"vipgate/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumFreeItems int
	NumVipItems  int
	NumVipUsers  int
	NumRecs      int
	ShouldClean  bool
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll deletes every seeded table's rows. Order matters for FK integrity.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Reaction{},
		&models.Favorite{},
		&models.PasswordReset{},
		&models.Recommendation{},
		&models.ContentItem{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// Run seeds the database per the given options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	var emails []string
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		emails = append(emails, user.Email)
	}
	for i := 0; i < opts.NumVipUsers; i++ {
		// Mix of healthy and lapsed grants so admin views have both.
		daysLeft := 30 - (i%4)*15
		if _, err := s.factory.CreateVipUser(daysLeft); err != nil {
			return err
		}
	}

	freeItems := make([]*models.ContentItem, 0, opts.NumFreeItems)
	for i := 0; i < opts.NumFreeItems; i++ {
		freeItems = append(freeItems, s.factory.BuildContentItem(models.TierFree))
	}
	if err := s.factory.CreateContentBatch(freeItems); err != nil {
		return err
	}

	vipItems := make([]*models.ContentItem, 0, opts.NumVipItems)
	for i := 0; i < opts.NumVipItems; i++ {
		vipItems = append(vipItems, s.factory.BuildContentItem(models.TierVip))
	}
	if err := s.factory.CreateContentBatch(vipItems); err != nil {
		return err
	}

	for i := 0; i < opts.NumRecs && len(emails) > 0; i++ {
		email := emails[i%len(emails)]
		if _, err := s.factory.CreateRecommendation(email); err != nil {
			return err
		}
	}

	log.Printf("seeded %d users (%d VIP), %d free items, %d VIP items, %d recommendations",
		opts.NumUsers, opts.NumVipUsers, opts.NumFreeItems, opts.NumVipItems, opts.NumRecs)
	return nil
}

// Preset is a named seeding profile loadable from YAML.
type Preset struct {
	Name      string `yaml:"name"`
	Users     int    `yaml:"users"`
	VipUsers  int    `yaml:"vipUsers"`
	FreeItems int    `yaml:"freeItems"`
	VipItems  int    `yaml:"vipItems"`
	Recs      int    `yaml:"recommendations"`
	Clean     bool   `yaml:"clean"`
}

// builtinPresets always exist, file-based presets can add more.
var builtinPresets = map[string]Preset{
	"Minimal": {Name: "Minimal", Users: 5, VipUsers: 2, FreeItems: 10, VipItems: 5, Recs: 3, Clean: true},
	"Demo":    {Name: "Demo", Users: 50, VipUsers: 15, FreeItems: 120, VipItems: 60, Recs: 25, Clean: true},
	"Load":    {Name: "Load", Users: 500, VipUsers: 150, FreeItems: 1500, VipItems: 800, Recs: 200, Clean: true},
}

// LoadPresets parses extra presets from a YAML file. Missing file is not an
// error; the built-ins still apply.
func LoadPresets(path string) (map[string]Preset, error) {
	presets := make(map[string]Preset, len(builtinPresets))
	for name, p := range builtinPresets {
		presets[name] = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return presets, nil
		}
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	var filePresets []Preset
	if err := yaml.Unmarshal(data, &filePresets); err != nil {
		return nil, fmt.Errorf("parsing presets file: %w", err)
	}
	for _, p := range filePresets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset without a name in %s", path)
		}
		presets[p.Name] = p
	}
	return presets, nil
}

// ApplyPreset runs the named preset, consulting the optional presets file.
func (s *Seeder) ApplyPreset(name, presetsPath string) error {
	presets, err := LoadPresets(presetsPath)
	if err != nil {
		return err
	}
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	return s.Run(Options{
		NumUsers:     p.Users,
		NumVipUsers:  p.VipUsers,
		NumFreeItems: p.FreeItems,
		NumVipItems:  p.VipItems,
		NumRecs:      p.Recs,
		ShouldClean:  p.Clean,
	})
}
