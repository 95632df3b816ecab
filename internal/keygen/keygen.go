// Package keygen issues memorable two-word player keys with a large
// combination space.
package keygen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"MIGHTY", "SNEAKY", "COSMIC", "FIZZY", "JOLLY", "SPICY", "BOLD", "RAPID", "CRUNCHY", "CURIOUS", "WACKY", "ZIPPY",
	"BRAVE", "LUCKY", "SUNNY", "CHILLY", "DREAMY", "EPIC", "FANCY", "GLIMMERING", "HAPPY", "ICY", "JAZZY", "LUMINOUS",
	"MAGNETIC", "NIMBLE", "ODD", "PEPPY", "QUICK", "RADIANT", "SILLY", "TWINKLY", "VIVID", "WHISPERING", "ZANY", "ZESTY",
	"GLEEFUL", "SASSY", "SNAPPY", "SUGARY", "TASTY", "TINY", "GIANT", "GENTLE", "ROWDY", "CHEERFUL", "WILD", "QUIRKY",
	"SPARKLY", "BREEZY", "BUBBLY", "CHIRPY", "CLOUDED", "DAZZLING", "DARING", "FEISTY", "GRACEFUL", "MERRY", "PLUCKY", "SMOOTH",
}

var nouns = []string{
	"MANGO", "BANANA", "PINEAPPLE", "APPLE", "ORANGE", "GRAPE", "BERRY", "PEACH", "PEAR", "KIWI", "LEMON", "LIME", "CHERRY", "COCONUT",
	"PAPAYA", "GUAVA", "FIG", "APRICOT", "AVOCADO", "TANGERINE", "MELON", "WATERMELON", "PLUM", "POMEGRANATE", "BLUEBERRY", "STRAWBERRY",
	"BLACKBERRY", "RASPBERRY", "DRAGONFRUIT", "CANTALOUPE", "HONEYDEW", "CRANBERRY",
	"PANDA", "KOALA", "DRAGON", "OTTER", "LION", "TIGER", "BEAR", "EAGLE", "HAWK", "FOX", "WOLF", "WHALE", "DOLPHIN", "SHARK", "TURTLE",
	"FALCON", "OWL", "PENGUIN", "SEAL", "GIRAFFE", "ZEBRA", "RHINO", "HIPPO", "CAMEL", "LLAMA", "ALPACA", "MONKEY", "SLOTH", "RABBIT",
	"FROG", "TOAD", "CRAB", "SQUID", "OCTOPUS", "BEE", "ANT", "SPIDER", "BUTTERFLY", "FIREFLY", "KANGAROO", "BUFFALO", "CHEETAH", "JAGUAR",
	"PUMPKIN", "TACO", "COOKIE", "DONUT", "PANCAKE", "WAFFLE", "CUPCAKE", "NOODLE", "PASTA", "BURGER", "SUSHI", "RAMEN", "PIZZA", "MUFFIN",
	"BROWNIE", "PRETZEL", "NACHO", "CANDY", "MARSHMALLOW", "POPCORN", "CHOCOLATE",
	"ROCKET", "ROBOT", "LASER", "COMET", "PLANET", "STAR", "MOON", "SUN", "CLOUD", "RAINBOW", "THUNDER", "VOLCANO", "MOUNTAIN", "RIVER",
	"OCEAN", "SEASHELL", "TREASURE", "BEACON", "MAP", "COMPASS", "LANTERN", "GADGET", "MAGNET", "CRYSTAL", "GEM", "PEBBLE", "ACORN",
}

// TakenFunc reports whether a candidate key is already assigned.
type TakenFunc func(ctx context.Context, key string) (bool, error)

func pick(list []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", fmt.Errorf("random pick: %w", err)
	}
	return list[n.Int64()], nil
}

// TwoWordKey generates an ADJECTIVE-NOUN key not yet taken. It tries
// random picks first, then sweeps the whole space deterministically, so
// it only fails once every combination is assigned.
func TwoWordKey(ctx context.Context, isTaken TakenFunc) (string, error) {
	maxRandom := len(adjectives) * len(nouns)
	if maxRandom > 5000 {
		maxRandom = 5000
	}

	for i := 0; i < maxRandom; i++ {
		adjective, err := pick(adjectives)
		if err != nil {
			return "", err
		}
		noun, err := pick(nouns)
		if err != nil {
			return "", err
		}
		candidate := adjective + "-" + noun
		taken, err := isTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// Deterministic sweep of the full space.
	for _, adjective := range adjectives {
		for _, noun := range nouns {
			candidate := adjective + "-" + noun
			taken, err := isTaken(ctx, candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("key space exhausted")
}
