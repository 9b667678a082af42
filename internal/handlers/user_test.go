package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/dto"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/services"
	"gorm.io/gorm"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	handler     *UserHandler
	authHandler *AuthHandler
	authService *services.AuthService
}

// SetupTest runs before each test
func (suite *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = openTestDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	messageRepo := repository.NewMessageRepository(suite.db)
	followRepo := repository.NewFollowRepository(suite.db)
	likeRepo := repository.NewLikeRepository(suite.db)

	suite.authService = services.NewAuthService(userRepo)
	relationshipService := services.NewRelationshipService(userRepo, messageRepo, followRepo, likeRepo)
	feedService := services.NewFeedService(userRepo, messageRepo, followRepo, likeRepo)

	suite.handler = NewUserHandler(suite.authService, relationshipService, feedService)
	suite.authHandler = NewAuthHandler(suite.authService)
}

func (suite *UserHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserHandlerTestSuite) follow(followerID, followedID uint64) {
	suite.Require().NoError(suite.db.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error)
}

// Helper function to create a context for /api/users/:id, authenticated when viewerID is non-zero
func (suite *UserHandlerTestSuite) createUserContext(method string, targetID, viewerID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	id := strconv.FormatUint(targetID, 10)

	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/api/users/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	if viewerID != 0 {
		c.Set(constants.ContextKeyUserID, viewerID)
	}

	return c, w
}

func (suite *UserHandlerTestSuite) TestSearchUsers() {
	suite.createTestUser("alice")
	suite.createTestUser("malcolm")
	suite.createTestUser("bob")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users?q=AL", nil)

	suite.handler.SearchUsers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Users []dto.UserDTO `json:"users"`
	}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	if assert.Len(suite.T(), response.Users, 2) {
		assert.Equal(suite.T(), "alice", response.Users[0].Username)
		assert.Equal(suite.T(), "malcolm", response.Users[1].Username)
	}
}

func (suite *UserHandlerTestSuite) TestGetUser_Profile() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.follow(alice.ID, bob.ID)
	suite.Require().NoError(suite.db.Create(&models.Message{Text: "bob here", Timestamp: time.Now().UTC(), UserID: bob.ID}).Error)

	c, w := suite.createUserContext(http.MethodGet, bob.ID, alice.ID)
	suite.handler.GetUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProfileDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "bob", response.Username)
	assert.Equal(suite.T(), int64(1), response.FollowerCount)
	assert.Equal(suite.T(), int64(1), response.MessageCount)
	assert.True(suite.T(), response.IsFollowing)
	assert.False(suite.T(), response.IsFollowedBy)
	if assert.Len(suite.T(), response.Messages, 1) {
		assert.Equal(suite.T(), "bob here", response.Messages[0].Text)
	}
}

func (suite *UserHandlerTestSuite) TestGetUser_Anonymous() {
	bob := suite.createTestUser("bob")

	c, w := suite.createUserContext(http.MethodGet, bob.ID, 0)
	suite.handler.GetUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProfileDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(suite.T(), response.IsFollowing)
	assert.Empty(suite.T(), response.Messages)
}

func (suite *UserHandlerTestSuite) TestGetUser_NotFound() {
	c, w := suite.createUserContext(http.MethodGet, 999, 0)
	suite.handler.GetUser(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestGetUser_InvalidID() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.handler.GetUser(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *UserHandlerTestSuite) TestFollow() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	c, w := suite.createUserContext(http.MethodPost, bob.ID, alice.ID)
	suite.handler.Follow(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	c, w = suite.createUserContext(http.MethodPost, bob.ID, alice.ID)
	suite.handler.Follow(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	c, w = suite.createUserContext(http.MethodPost, alice.ID, alice.ID)
	suite.handler.Follow(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "INVALID_OPERATION")

	c, w = suite.createUserContext(http.MethodPost, 999, alice.ID)
	suite.handler.Follow(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestUnfollow() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.follow(alice.ID, bob.ID)

	c, w := suite.createUserContext(http.MethodDelete, bob.ID, alice.ID)
	suite.handler.Unfollow(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	c, w = suite.createUserContext(http.MethodDelete, bob.ID, alice.ID)
	suite.handler.Unfollow(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestListFollowers() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")
	suite.follow(alice.ID, carol.ID)
	suite.follow(bob.ID, carol.ID)

	c, w := suite.createUserContext(http.MethodGet, carol.ID, alice.ID)
	suite.handler.ListFollowers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Users []dto.UserDTO `json:"users"`
	}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response.Users, 2)

	c, w = suite.createUserContext(http.MethodGet, carol.ID, alice.ID)
	suite.handler.ListFollowing(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(suite.T(), response.Users)
}

func (suite *UserHandlerTestSuite) TestUpdateProfile_WrongPassword() {
	user, err := suite.authService.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	suite.Require().NoError(err)

	r := gin.New()
	r.PATCH("/api/users/me", func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}, suite.handler.UpdateProfile)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(suite.T(), http.MethodPatch, "/api/users/me", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "not-it",
	}))
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(suite.T(), http.MethodPatch, "/api/users/me", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"bio":      "hi",
		"password": "supersecret",
	}))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.CurrentUserDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "alice2", response.Username)
	assert.Equal(suite.T(), "hi", response.Bio)
}

func (suite *UserHandlerTestSuite) TestDeleteAccount() {
	r := newSessionRouter()
	r.POST("/api/auth/signup", suite.authHandler.Signup)
	r.DELETE("/api/users/me", middleware.RequireAuth(), suite.handler.DeleteAccount)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(suite.T(), http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "leaving",
		"email":    "leaving@example.com",
		"password": "supersecret",
	}))
	suite.Require().Equal(http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()

	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestUserHandlerTestSuite runs the test suite
func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
