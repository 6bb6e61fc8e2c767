package seed

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Options controls corpus size and shape.
type Options struct {
	Humans int
	Agents int
	Bots   int
	Mixed  int
	Days   int
	Seed   int64
}

// DefaultOptions is a small development corpus.
func DefaultOptions() Options {
	return Options{Humans: 20, Agents: 5, Bots: 3, Mixed: 2, Days: 30, Seed: 1}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Humans <= 0 {
		o.Humans = d.Humans
	}
	if o.Agents < 0 {
		o.Agents = 0
	}
	if o.Bots < 0 {
		o.Bots = 0
	}
	if o.Mixed < 0 {
		o.Mixed = 0
	}
	if o.Days <= 0 {
		o.Days = d.Days
	}
	return o
}

// ClearAll removes every corpus row before a fresh seed.
func ClearAll(db *gorm.DB) error {
	for _, table := range []string{"interactions", "comments", "posts", "submissions", "actors"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the full persona corpus: human operators first so the machine
// personas have posts to react to, then derived interaction edges.
func Run(db *gorm.DB, opts Options) error {
	opts = opts.withDefaults()
	f := NewFactory(db, opts)

	for i := 0; i < opts.Humans; i++ {
		if err := f.seedHuman(fmt.Sprintf("human%02d", i)); err != nil {
			return fmt.Errorf("seed human: %w", err)
		}
	}
	for i := 0; i < opts.Agents; i++ {
		if err := f.seedAgent(fmt.Sprintf("agent%02d", i)); err != nil {
			return fmt.Errorf("seed agent: %w", err)
		}
	}
	for i := 0; i < opts.Bots; i++ {
		if err := f.seedMintBot(fmt.Sprintf("mintbot%02d", i)); err != nil {
			return fmt.Errorf("seed bot: %w", err)
		}
	}
	for i := 0; i < opts.Mixed; i++ {
		if err := f.seedMixed(fmt.Sprintf("centaur%02d", i)); err != nil {
			return fmt.Errorf("seed mixed: %w", err)
		}
	}

	if err := f.BuildInteractions(); err != nil {
		return fmt.Errorf("build interactions: %w", err)
	}

	slog.Info("seed complete",
		"humans", opts.Humans, "agents", opts.Agents,
		"bots", opts.Bots, "mixed", opts.Mixed,
		"posts", f.nextPost, "comments", f.nextComment)
	return nil
}

// seedHuman writes daytime posts and slow, messy replies. Activity sits in
// waking hours with nothing between 01:00 and 07:00 UTC.
func (f *Factory) seedHuman(username string) error {
	if _, err := f.CreateActor(username); err != nil {
		return err
	}

	for day := 0; day < f.opts.Days; day += 1 + f.rng.Intn(3) {
		hour := 8 + f.rng.Intn(16) // 08:00..23:00
		at := f.start.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour).
			Add(time.Duration(f.rng.Intn(3600)) * time.Second)

		if _, err := f.CreatePost(username, f.faker.Sentence(4+f.rng.Intn(5)), f.humanText(), at); err != nil {
			return err
		}

		if target := f.randomTarget(username); target != nil {
			delay := time.Duration(10+f.rng.Intn(350)) * time.Minute
			if _, err := f.CreateComment(username, target, f.humanText(), at.Add(delay)); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedAgent writes at a steady cadence around the clock and replies to other
// accounts within seconds, in even, marker-laden prose.
func (f *Factory) seedAgent(username string) error {
	if _, err := f.CreateActor(username); err != nil {
		return err
	}

	// Posting every 7 hours walks the clock through all 24 hours.
	for i := 0; i < f.opts.Days*3; i++ {
		at := f.start.Add(time.Duration(i) * 7 * time.Hour)
		if _, err := f.CreatePost(username, "Thoughts on "+f.faker.BuzzWord(), f.agentText(), at); err != nil {
			return err
		}

		if target := f.randomTarget(username); target != nil {
			postAt, ok := parseSeedStamp(target.CreatedAt)
			if !ok {
				continue
			}
			delay := time.Duration(20+f.rng.Intn(70)) * time.Second
			if _, err := f.CreateComment(username, target, f.agentText(), postAt.Add(delay)); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedMintBot emits the same structured mint command on a fixed interval.
func (f *Factory) seedMintBot(username string) error {
	if _, err := f.CreateActor(username); err != nil {
		return err
	}

	tick := f.faker.RandomString([]string{"moon", "gold", "zap", "fomo"})
	for i := 0; i < 30; i++ {
		at := f.start.Add(time.Duration(i) * 17 * time.Minute)
		content := fmt.Sprintf(`{"p":"mbc-20","op":"mint","tick":"%s","amt":"1000"}`, tick)
		if _, err := f.CreatePost(username, "mint", content, at); err != nil {
			return err
		}
	}
	return nil
}

// seedMixed posts like a human but replies like an agent, the hybrid pattern
// a human steering an assistant produces.
func (f *Factory) seedMixed(username string) error {
	if _, err := f.CreateActor(username); err != nil {
		return err
	}

	for day := 0; day < f.opts.Days; day += 2 {
		hour := 9 + f.rng.Intn(13)
		at := f.start.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
		if _, err := f.CreatePost(username, f.faker.Sentence(5), f.humanText(), at); err != nil {
			return err
		}

		if target := f.randomTarget(username); target != nil {
			postAt, ok := parseSeedStamp(target.CreatedAt)
			if !ok {
				continue
			}
			delay := time.Duration(30+f.rng.Intn(120)) * time.Second
			if _, err := f.CreateComment(username, target, f.agentText(), postAt.Add(delay)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Factory) humanText() string {
	switch f.rng.Intn(4) {
	case 0:
		return f.faker.Sentence(3 + f.rng.Intn(10))
	case 1:
		return f.faker.Paragraph(1, 2+f.rng.Intn(3), 4+f.rng.Intn(8), " ")
	case 2:
		return "lol " + f.faker.Sentence(2+f.rng.Intn(4)) + " 🔥"
	default:
		return f.faker.HipsterSentence(5 + f.rng.Intn(12))
	}
}

func (f *Factory) agentText() string {
	topic := f.faker.BuzzWord()
	switch f.rng.Intn(3) {
	case 0:
		return fmt.Sprintf(
			"I appreciate you raising this. It's worth noting that %s plays a significant role here. Additionally, %s deserves careful consideration.",
			topic, f.faker.BuzzWord())
	case 1:
		return fmt.Sprintf(
			"That's an interesting perspective on %s. However, it's important to consider several aspects:\n- %s\n- %s\n- broader context",
			topic, f.faker.BuzzWord(), f.faker.BuzzWord())
	default:
		return fmt.Sprintf(
			"Great question! Specifically, %s tends to be nuanced. Furthermore, the interplay with %s is worth noting.",
			topic, f.faker.BuzzWord())
	}
}

func parseSeedStamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}
