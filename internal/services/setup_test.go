package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Foreign keys are off by default in sqlite
const testDSN = "file::memory:?_foreign_keys=on"

type serviceTestEnv struct {
	db            *gorm.DB
	auth          *AuthService
	relationships *RelationshipService
	feed          *FeedService
	messages      *MessageService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(testDSN), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to an in-memory DSN opens a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	return serviceTestEnv{
		db:            db,
		auth:          NewAuthService(userRepo),
		relationships: NewRelationshipService(userRepo, messageRepo, followRepo, likeRepo),
		feed:          NewFeedService(userRepo, messageRepo, followRepo, likeRepo),
		messages:      NewMessageService(userRepo, messageRepo, nil),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.auth.Register(RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password",
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) createMessage(t *testing.T, userID uint64, text string, at time.Time) *models.Message {
	t.Helper()

	message := &models.Message{
		Text:      text,
		Timestamp: at,
		UserID:    userID,
	}
	require.NoError(t, env.db.Create(message).Error)
	return message
}

func messageTexts(messages []models.Message) []string {
	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.Text
	}
	return texts
}
