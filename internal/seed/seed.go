// Package seed populates a development database with realistic community
// activity: users, posts, weighted random reactions, and threaded comments.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Eco-themed reactions are more likely.
var reactionWeights = map[string]int{
	models.ReactionLike:        25,
	models.ReactionLove:        15,
	models.ReactionEcoLove:     30,
	models.ReactionRecycle:     20,
	models.ReactionEarthDay:    15,
	models.ReactionGreenEnergy: 10,
	models.ReactionDislike:     5,
}

var postTitles = []string{
	"Planted 20 trees in our neighborhood park today!",
	"My first month of zero-waste living",
	"Switched to solar panels, here are the numbers",
	"Community cleanup this Saturday, who's in?",
	"DIY compost bin from reclaimed pallets",
	"Cycling to work for a year: what I learned",
	"Rainwater harvesting setup on a budget",
	"Our office went paperless, huge difference",
}

var postContents = []string{
	"It took the whole weekend but the result is amazing. Every small action counts when it comes to protecting our environment.",
	"Sharing my progress here to keep myself accountable. Ask me anything!",
	"The initial cost was higher than expected but the long-term savings make it worth it.",
	"Would love to see more people from the community join in. Together we can make a real difference.",
}

var commentTexts = []string{
	"This is so inspiring! Thanks for sharing! 🌟",
	"I've been thinking about trying this myself. How did you get started?",
	"Amazing work! Keep it up! 💚",
	"This gives me hope for our planet's future! 🌍",
	"Such a great idea! I'm definitely going to try this.",
	"Love seeing people make a difference! ♻️",
	"This is exactly what we need more of. Thank you!",
	"You're an inspiration to our community! 🌱",
	"Fantastic results! Can you share more details?",
	"This made my day! So proud of our eco-warriors! ⚡",
}

var replyTexts = []string{
	"Thanks for the encouragement! 😊",
	"Absolutely! Happy to help spread awareness! 🌱",
	"Let me know if you have any questions!",
	"Together we can make a bigger impact! 💚",
	"I appreciate your support! 🙏",
}

// WeightedRandom selects a key with probability proportional to its weight.
func WeightedRandom(rng *rand.Rand, weights map[string]int, order []string) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := rng.Intn(total) + 1
	for _, key := range order {
		n -= weights[key]
		if n <= 0 {
			return key
		}
	}
	return order[0] // fallback
}

// Run populates the database. Existing rows are left alone; seeding is
// additive.
func Run(db *gorm.DB, userCount, postCount int, rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	postRepo := repositories.NewPostgresPostRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Name:     fmt.Sprintf("Eco Warrior %d", i+1),
			Username: fmt.Sprintf("ecowarrior%d", i+1),
			Email:    fmt.Sprintf("ecowarrior%d@example.com", i+1),
			Password: string(hashed),
			Role:     models.RoleUser,
			Status:   models.StatusActive,
			EcoScore: rng.Intn(500),
		}
		if i == 0 {
			user.Role = models.RoleAdmin
		} else if i == 1 {
			user.Role = models.RoleModerator
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	posts := make([]models.Post, 0, postCount)
	for i := 0; i < postCount; i++ {
		author := users[rng.Intn(len(users))]
		post := models.Post{
			UserID:      author.ID,
			Title:       postTitles[rng.Intn(len(postTitles))],
			Content:     postContents[rng.Intn(len(postContents))],
			IsPublished: true,
			CreatedAt:   time.Now().AddDate(0, 0, -rng.Intn(60)).Add(-time.Duration(rng.Intn(24)) * time.Hour),
		}
		if err := db.Create(&post).Error; err != nil {
			return err
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	for _, post := range posts {
		// Random number of reactions per post (0-15), one per user at most
		reactionCount := rng.Intn(16)
		if reactionCount > len(users) {
			reactionCount = len(users)
		}
		for _, idx := range rng.Perm(len(users))[:reactionCount] {
			reaction := models.Reaction{
				UserID:    users[idx].ID,
				PostID:    post.ID,
				Type:      WeightedRandom(rng, reactionWeights, models.AvailableReactionTypes),
				CreatedAt: post.CreatedAt.Add(time.Duration(1+rng.Intn(1440)) * time.Minute),
			}
			if err := db.Create(&reaction).Error; err != nil {
				return err
			}
		}
		if _, err := postRepo.RecountReactions(post.ID); err != nil {
			return err
		}

		// Random number of comments per post (0-8)
		commentCount := rng.Intn(9)
		for i := 0; i < commentCount; i++ {
			commenter := users[rng.Intn(len(users))]
			comment := models.Comment{
				PostID:    post.ID,
				UserID:    commenter.ID,
				Content:   commentTexts[rng.Intn(len(commentTexts))],
				CreatedAt: post.CreatedAt.Add(time.Duration(30+rng.Intn(2850)) * time.Minute),
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}

			// 30% chance of a reply from someone else
			if rng.Intn(100) < 30 {
				replier := users[rng.Intn(len(users))]
				if replier.ID != commenter.ID {
					reply := models.Comment{
						PostID:    post.ID,
						UserID:    replier.ID,
						ParentID:  &comment.ID,
						Content:   replyTexts[rng.Intn(len(replyTexts))],
						CreatedAt: comment.CreatedAt.Add(time.Duration(10+rng.Intn(470)) * time.Minute),
					}
					if err := db.Create(&reply).Error; err != nil {
						return err
					}
				}
			}
		}
		if _, err := postRepo.RecountComments(post.ID); err != nil {
			return err
		}
	}

	log.Printf("Seeded reactions and comments for %d posts", len(posts))
	return nil
}
