package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"connectsphere/internal/common/security"
	"connectsphere/internal/domain/model"
	"connectsphere/internal/domain/repository"
	"connectsphere/internal/platform/config"
	"connectsphere/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seeds the database with sample accounts and posts. Existing users and
// posts collections are dropped first.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer database.Close(context.Background(), db)

	if err := db.Collection(database.UserCollection).Drop(ctx); err != nil {
		log.Fatalf("Error dropping users collection: %v", err)
	}
	if err := db.Collection(database.PostCollection).Drop(ctx); err != nil {
		log.Fatalf("Error dropping posts collection: %v", err)
	}

	userRepo, err := repository.NewMongoUserRepository(ctx, db)
	if err != nil {
		log.Fatalf("Error initializing user repository: %v", err)
	}
	postRepo := repository.NewMongoPostRepository(db)
	hasher := security.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency)

	users, err := seedUsers(ctx, userRepo, hasher)
	if err != nil {
		log.Fatalf("Error seeding users: %v", err)
	}
	fmt.Printf("Seeded %d users.\n", len(users))

	posts, err := seedPosts(ctx, postRepo, users)
	if err != nil {
		log.Fatalf("Error seeding posts: %v", err)
	}
	fmt.Printf("Seeded %d posts.\n", len(posts))
	fmt.Println("All seed accounts use the password \"password123\".")
}

type seedUser struct {
	name  string
	email string
	bio   string
	pic   string
}

var sampleUsers = []seedUser{
	{
		name:  "Sarah Chen",
		email: "sarah.chen@example.com",
		bio:   "Software engineer passionate about web development and open source.",
		pic:   "https://i.pravatar.cc/150?img=1",
	},
	{
		name:  "Marcus Johnson",
		email: "marcus.j@example.com",
		bio:   "Photographer | Traveler | Storyteller. Capturing moments one frame at a time.",
		pic:   "https://i.pravatar.cc/150?img=12",
	},
	{
		name:  "Emily Rodriguez",
		email: "emily.r@example.com",
		bio:   "UX Designer | Dog mom | Always learning something new.",
		pic:   "https://i.pravatar.cc/150?img=5",
	},
	{
		name:  "David Kim",
		email: "david.kim@example.com",
		bio:   "Data scientist | Machine learning enthusiast | Chess player.",
		pic:   "https://i.pravatar.cc/150?img=33",
	},
	{
		name:  "Jessica Taylor",
		email: "jessica.t@example.com",
		bio:   "Content creator | Fitness enthusiast | Sharing tips for a healthy lifestyle.",
		pic:   "https://i.pravatar.cc/150?img=47",
	},
}

var sampleContents = []string{
	"Just shipped a new feature! The feeling of seeing your code in production never gets old. What's everyone working on this week?",
	"Coffee and code - the perfect morning combo. Anyone else find that their best ideas come during early morning sessions?",
	"Debugging tip: when you've been stuck on a bug for hours, explain it to a rubber duck. Works every time!",
	"Golden hour in the mountains. Sometimes the best photos happen when you least expect them.",
	"Question for fellow photographers: what's your go-to lens for street photography?",
	"New design system launched! After months of work, our team finally released it. So proud of what we've built together.",
	"My dog just learned a new trick! Who else has pets that make their day better?",
	"Spent the day talking to users and learned so much. The best solutions come from understanding the problem deeply.",
	"Chess puzzle of the day solved in four moves. Anyone up for a game?",
	"Morning run done. Small consistent steps beat occasional heroics, in fitness and in everything else.",
}

var sampleImages = []string{
	"",
	"https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=800",
	"",
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
	"",
}

func seedUsers(ctx context.Context, repo repository.UserRepository, hasher *security.PasswordHasher) ([]model.User, error) {
	hashed, err := hasher.Hash("password123")
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(sampleUsers))
	now := time.Now()
	for _, su := range sampleUsers {
		user := model.User{
			ID:             primitive.NewObjectID(),
			Name:           su.name,
			Email:          su.email,
			HashedPassword: hashed,
			Bio:            su.bio,
			ProfilePic:     su.pic,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(ctx, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedPosts(ctx context.Context, repo repository.PostRepository, users []model.User) ([]model.Post, error) {
	posts := make([]model.Post, 0, len(sampleContents))
	for i, content := range sampleContents {
		author := users[i%len(users)]
		createdAt := time.Now().Add(-time.Duration(len(sampleContents)-i) * time.Hour)

		likes, dislikes := randomReactions(users, author.ID)
		post := model.Post{
			ID:        primitive.NewObjectID(),
			UserID:    author.ID,
			Content:   content,
			Image:     sampleImages[i%len(sampleImages)],
			Likes:     likes,
			Dislikes:  dislikes,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := repo.Create(ctx, &post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// randomReactions picks disjoint like/dislike sets so the seed data honors
// the same mutual-exclusion rule the toggle operation maintains.
func randomReactions(users []model.User, authorID primitive.ObjectID) ([]primitive.ObjectID, []primitive.ObjectID) {
	likes := []primitive.ObjectID{}
	dislikes := []primitive.ObjectID{}
	for _, u := range users {
		if u.ID == authorID {
			continue
		}
		switch rand.Intn(4) {
		case 0, 1: // likes are twice as common as dislikes
			likes = append(likes, u.ID)
		case 2:
			dislikes = append(dislikes, u.ID)
		}
	}
	return likes, dislikes
}
