package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Kavithma17/Treasure-Hunt/internal/config"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/sqlite"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// fixtureFile is the YAML shape of a seed file; see
// fixtures/example.yaml for a complete one.
type fixtureFile struct {
	Stages     []fixtureStage     `yaml:"stages"`
	Challenges []fixtureChallenge `yaml:"challenges"`
}

type fixtureStage struct {
	Code        string `yaml:"code"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Clue        string `yaml:"clue"`
	Compulsory  bool   `yaml:"compulsory"`
	Active      bool   `yaml:"active"`
}

type fixtureChallenge struct {
	Ref    string `yaml:"ref"`
	Code   string `yaml:"code"`
	Stage  string `yaml:"stage"`
	Type   string `yaml:"type"`
	Prompt string `yaml:"prompt"`
	Clue   string `yaml:"clue"`
	Active *bool  `yaml:"active"`

	MCQ   *domain.MCQData   `yaml:"mcq"`
	FIB   *domain.FIBData   `yaml:"fib"`
	QR    *domain.QRData    `yaml:"qr"`
	Photo *domain.PhotoData `yaml:"photo"`
}

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load challenge fixtures into the catalog",
	Long:  `Reads a YAML fixture file of stages and challenges and upserts them into the configured challenge storage.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		if err := runSeed(cmd.Context(), cfg.StoragePath, args[0]); err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runSeed(ctx context.Context, dbPath, fixturePath string) error {
	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	for _, s := range file.Stages {
		stage := domain.Stage{
			Code:        s.Code,
			Title:       s.Title,
			Description: s.Description,
			Clue:        s.Clue,
			Compulsory:  s.Compulsory,
			Active:      s.Active,
		}
		if stage.Code == "" || stage.Title == "" {
			return fmt.Errorf("stage missing code or title: %+v", s)
		}
		if err := store.SaveStage(ctx, stage); err != nil {
			return fmt.Errorf("save stage %s: %w", stage.Code, err)
		}
	}

	for _, c := range file.Challenges {
		challenge, err := c.toDomain()
		if err != nil {
			return err
		}
		if err := store.SaveChallenge(ctx, challenge); err != nil {
			return fmt.Errorf("save challenge %s: %w", challenge.Code, err)
		}
	}

	fmt.Printf("Seeded %d stages and %d challenges into %s\n",
		len(file.Stages), len(file.Challenges), dbPath)
	return nil
}

func (c fixtureChallenge) toDomain() (*domain.Challenge, error) {
	typ := domain.ChallengeType(c.Type)
	if !typ.Valid() {
		return nil, fmt.Errorf("challenge %s: unknown type %q", c.Code, c.Type)
	}
	if c.Code == "" || c.Stage == "" || c.Prompt == "" {
		return nil, fmt.Errorf("challenge missing code, stage or prompt: %+v", c)
	}

	challenge := &domain.Challenge{
		Ref:       c.Ref,
		Code:      c.Code,
		StageCode: c.Stage,
		Type:      typ,
		Prompt:    c.Prompt,
		Clue:      c.Clue,
		Active:    true,
		MCQ:       c.MCQ,
		FIB:       c.FIB,
		QR:        c.QR,
		Photo:     c.Photo,
	}
	if c.Active != nil {
		challenge.Active = *c.Active
	}

	switch typ {
	case domain.TypeMCQ:
		if challenge.MCQ == nil || len(challenge.MCQ.Options) < 2 || challenge.MCQ.CorrectOptionID == "" {
			return nil, fmt.Errorf("challenge %s: mcq needs options and correctOptionId", c.Code)
		}
	case domain.TypeFIB:
		if challenge.FIB == nil || len(challenge.FIB.Answers) == 0 {
			return nil, fmt.Errorf("challenge %s: fib needs at least one answer", c.Code)
		}
	case domain.TypeQR:
		if challenge.QR == nil || challenge.QR.Code == "" {
			return nil, fmt.Errorf("challenge %s: qr needs a code", c.Code)
		}
	case domain.TypePhoto:
		if challenge.Photo == nil || challenge.Photo.ExpectedKey == "" {
			return nil, fmt.Errorf("challenge %s: photo needs an expected key", c.Code)
		}
	}
	return challenge, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
