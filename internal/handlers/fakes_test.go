package handlers_test

import (
	"context"
	"sync"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) addUser(username, email string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &models.User{
		ID:          primitive.NewObjectID(),
		Username:    username,
		Email:       email,
		Followers:   []models.FriendRef{},
		Requetes:    []models.FriendRef{},
		Invitations: []models.FriendRef{},
	}
	r.users[u.ID.Hex()] = u
	return u
}

func (r *fakeUserRepo) get(id string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	if user.Followers == nil {
		user.Followers = []models.FriendRef{}
	}
	if user.Requetes == nil {
		user.Requetes = []models.FriendRef{}
	}
	if user.Invitations == nil {
		user.Invitations = []models.FriendRef{}
	}
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetAllUsers(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetAllUsersExcept(_ context.Context, id string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if u.ID.Hex() != id {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateFollowerSnapshots(_ context.Context, userID, username, profilePicture string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		for i := range u.Followers {
			if u.Followers[i].ID == userID {
				u.Followers[i].Username = username
				u.Followers[i].ProfilePicture = profilePicture
			}
		}
	}
	return nil
}

// fakePostRepo is an in-memory PostRepository.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	order []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) addPost(userID, desc string) *models.Post {
	p := &models.Post{
		UserID:   userID,
		Desc:     desc,
		Likes:    []string{},
		Dislikes: []string{},
		Comments: []models.Comment{},
	}
	_ = r.CreatePost(context.Background(), p)
	return p
}

func (r *fakePostRepo) get(id string) *models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts[id]
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Dislikes == nil {
		post.Dislikes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	cp := *post
	r.posts[post.ID.Hex()] = &cp
	r.order = append(r.order, post.ID.Hex())
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) GetPostsByUserID(_ context.Context, userID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, id := range r.order {
		if p, ok := r.posts[id]; ok && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) GetPostsByUserIDs(_ context.Context, userIDs []string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	out := []models.Post{}
	for _, id := range r.order {
		if p, ok := r.posts[id]; ok && want[p.UserID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ReplacePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	cp := *post
	r.posts[post.ID.Hex()] = &cp
	return nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, id string, req *models.UpdatePostRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if req.Desc != "" {
		p.Desc = req.Desc
	}
	if req.TagsFriends != nil {
		p.TagsFriends = req.TagsFriends
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.Feeling != "" {
		p.Feeling = req.Feeling
	}
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) UpdateAuthorSnapshots(_ context.Context, userID, username, profilePicture string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.UserID == userID {
			p.Username = username
			p.ProfilePicture = profilePicture
		}
	}
	return nil
}

// fakeNotificationRepo is an in-memory NotificationRepository.
type fakeNotificationRepo struct {
	mu     sync.Mutex
	notifs []models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, notif *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notif.ID = primitive.NewObjectID()
	r.notifs = append(r.notifs, *notif)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByReceiver(_ context.Context, receiverID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Notification{}
	for _, n := range r.notifs {
		if n.Receiver == receiverID {
			out = append(out, n)
		}
	}
	return out, nil
}

// fakeConversationRepo is an in-memory ConversationRepository.
type fakeConversationRepo struct {
	mu    sync.Mutex
	convs []models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{}
}

func (r *fakeConversationRepo) CreateConversation(_ context.Context, conv *models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv.ID = primitive.NewObjectID()
	r.convs = append(r.convs, *conv)
	return nil
}

func (r *fakeConversationRepo) FindByMembers(_ context.Context, memberA, memberB string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.convs {
		if containsAll(r.convs[i].Membres, memberA, memberB) {
			cp := r.convs[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeConversationRepo) FindByMember(_ context.Context, member string) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Conversation{}
	for _, conv := range r.convs {
		for _, m := range conv.Membres {
			if m == member {
				out = append(out, conv)
				break
			}
		}
	}
	return out, nil
}

func containsAll(members []string, wanted ...string) bool {
	for _, w := range wanted {
		found := false
		for _, m := range members {
			if m == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// fakeMessageRepo is an in-memory MessageRepository.
type fakeMessageRepo struct {
	mu   sync.Mutex
	msgs []models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *fakeMessageRepo) GetMessagesByConversationID(_ context.Context, convID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Message{}
	for _, m := range r.msgs {
		if m.ConversationID == convID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) GetLastMessageBetween(_ context.Context, userID, friendID string) (*models.Message, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeMessageRepo) GetSharedImages(_ context.Context, convID string) ([]models.SharedImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.SharedImage{}
	for _, m := range r.msgs {
		if m.ConversationID == convID && m.Image != nil {
			out = append(out, models.SharedImage{Image: m.Image, CreatedAt: m.CreatedAt})
		}
	}
	return out, nil
}
