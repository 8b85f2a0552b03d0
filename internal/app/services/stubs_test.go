package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/repositories"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

// Hand-rolled stubs for the narrow store interfaces the services
// declare. Each stub records the calls it sees so tests can assert on
// what reached the persistence layer.

type departmentCheckerStub struct {
	exists bool
	err    error
}

func (s *departmentCheckerStub) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.exists, s.err
}

type articleStoreStub struct {
	articles    map[int64]*models.Article
	lastFilters repositories.ArticleFilters
	listed      []models.Article
	total       int64
	created     []*models.Article
	updated     []*models.Article
	deleted     []int64
	getAllErr   error
	createErr   error
	nextID      int64
}

func newArticleStoreStub(articles ...*models.Article) *articleStoreStub {
	s := &articleStoreStub{articles: make(map[int64]*models.Article), nextID: 100}
	for _, a := range articles {
		s.articles[a.ID] = a
	}
	return s
}

func (s *articleStoreStub) GetAll(ctx context.Context, page, pageSize int, filters repositories.ArticleFilters) ([]models.Article, int64, error) {
	s.lastFilters = filters
	if s.getAllErr != nil {
		return nil, 0, s.getAllErr
	}
	return s.listed, s.total, nil
}

func (s *articleStoreStub) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	article, ok := s.articles[id]
	if !ok {
		return nil, apperrors.ErrArticleNotFound
	}
	copied := *article
	return &copied, nil
}

func (s *articleStoreStub) Create(ctx context.Context, article *models.Article) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	article.ID = s.nextID
	s.created = append(s.created, article)
	s.articles[article.ID] = article
	return nil
}

func (s *articleStoreStub) Update(ctx context.Context, article *models.Article) error {
	s.updated = append(s.updated, article)
	s.articles[article.ID] = article
	return nil
}

func (s *articleStoreStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.articles[id]; !ok {
		return apperrors.ErrArticleNotFound
	}
	delete(s.articles, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type engagementStub struct {
	likes    map[int64]int64
	comments map[int64]int64
	likedBy  map[int64]int64 // articleID -> userID that liked it
}

func (s *engagementStub) CountLikes(ctx context.Context, articleID int64) (int64, error) {
	return s.likes[articleID], nil
}

func (s *engagementStub) CountComments(ctx context.Context, articleID int64) (int64, error) {
	return s.comments[articleID], nil
}

func (s *engagementStub) LikeExists(ctx context.Context, articleID, userID int64) (bool, error) {
	liker, ok := s.likedBy[articleID]
	return ok && liker == userID, nil
}

type resourceStoreStub struct {
	resources    map[int64]*models.Resource
	lastFilters  repositories.ResourceFilters
	listed       []models.Resource
	total        int64
	created      []*models.Resource
	updated      []*models.Resource
	deleted      []int64
	incremented  []int64
	incrementErr error
	nextID       int64
}

func newResourceStoreStub(resources ...*models.Resource) *resourceStoreStub {
	s := &resourceStoreStub{resources: make(map[int64]*models.Resource), nextID: 100}
	for _, r := range resources {
		s.resources[r.ID] = r
	}
	return s
}

func (s *resourceStoreStub) GetAll(ctx context.Context, page, pageSize int, filters repositories.ResourceFilters) ([]models.Resource, int64, error) {
	s.lastFilters = filters
	return s.listed, s.total, nil
}

func (s *resourceStoreStub) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	resource, ok := s.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *resource
	return &copied, nil
}

func (s *resourceStoreStub) Create(ctx context.Context, resource *models.Resource) error {
	s.nextID++
	resource.ID = s.nextID
	s.created = append(s.created, resource)
	s.resources[resource.ID] = resource
	return nil
}

func (s *resourceStoreStub) Update(ctx context.Context, resource *models.Resource) error {
	s.updated = append(s.updated, resource)
	s.resources[resource.ID] = resource
	return nil
}

func (s *resourceStoreStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.resources[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(s.resources, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *resourceStoreStub) IncrementDownloadCount(ctx context.Context, id int64) (int64, error) {
	if s.incrementErr != nil {
		return 0, s.incrementErr
	}
	s.incremented = append(s.incremented, id)
	resource := s.resources[id]
	resource.DownloadCount++
	return resource.DownloadCount, nil
}

type downloadEvent struct {
	resourceID int64
	userID     *int64
}

type downloadRecorderStub struct {
	events []downloadEvent
	err    error
}

func (s *downloadRecorderStub) CreateDownloadRecord(ctx context.Context, resourceID int64, userID *int64) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, downloadEvent{resourceID: resourceID, userID: userID})
	return nil
}

type fileSaverStub struct {
	savedURL  string
	saveErr   error
	saved     int
	deleted   []string
	deleteErr error
}

func (s *fileSaverStub) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved++
	return s.savedURL, nil
}

func (s *fileSaverStub) DeleteFile(filePath string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, filePath)
	return nil
}

type likePair struct {
	articleID int64
	userID    int64
}

type bookmarkPair struct {
	resourceID int64
	userID     int64
}

type interactionStoreStub struct {
	likes            map[likePair]bool
	bookmarks        map[bookmarkPair]bool
	bookmarkIDs      []int64
	comments         map[int64]*models.ArticleComment
	nextID           int64
	deletedLikes     []likePair
	countLikesErr    error
	downloadHistory  []models.ResourceDownload
	lastHistoryLimit int
}

func newInteractionStoreStub() *interactionStoreStub {
	return &interactionStoreStub{
		likes:     make(map[likePair]bool),
		bookmarks: make(map[bookmarkPair]bool),
		comments:  make(map[int64]*models.ArticleComment),
		nextID:    100,
	}
}

func (s *interactionStoreStub) LikeExists(ctx context.Context, articleID, userID int64) (bool, error) {
	return s.likes[likePair{articleID, userID}], nil
}

func (s *interactionStoreStub) CreateLike(ctx context.Context, articleID, userID int64) error {
	s.likes[likePair{articleID, userID}] = true
	return nil
}

func (s *interactionStoreStub) DeleteLike(ctx context.Context, articleID, userID int64) error {
	delete(s.likes, likePair{articleID, userID})
	s.deletedLikes = append(s.deletedLikes, likePair{articleID, userID})
	return nil
}

func (s *interactionStoreStub) CountLikes(ctx context.Context, articleID int64) (int64, error) {
	if s.countLikesErr != nil {
		return 0, s.countLikesErr
	}
	var n int64
	for pair := range s.likes {
		if pair.articleID == articleID {
			n++
		}
	}
	return n, nil
}

func (s *interactionStoreStub) BookmarkExists(ctx context.Context, resourceID, userID int64) (bool, error) {
	return s.bookmarks[bookmarkPair{resourceID, userID}], nil
}

func (s *interactionStoreStub) CreateBookmark(ctx context.Context, resourceID, userID int64) error {
	s.bookmarks[bookmarkPair{resourceID, userID}] = true
	return nil
}

func (s *interactionStoreStub) DeleteBookmark(ctx context.Context, resourceID, userID int64) error {
	delete(s.bookmarks, bookmarkPair{resourceID, userID})
	return nil
}

func (s *interactionStoreStub) GetBookmarkedResourceIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.bookmarkIDs, nil
}

func (s *interactionStoreStub) GetRecentDownloadsByUser(ctx context.Context, userID int64, limit int) ([]models.ResourceDownload, error) {
	s.lastHistoryLimit = limit
	if len(s.downloadHistory) > limit {
		return s.downloadHistory[:limit], nil
	}
	return s.downloadHistory, nil
}

func (s *interactionStoreStub) CreateComment(ctx context.Context, comment *models.ArticleComment) error {
	s.nextID++
	comment.ID = s.nextID
	comment.CreatedAt = time.Now()
	s.comments[comment.ID] = comment
	return nil
}

func (s *interactionStoreStub) GetCommentByID(ctx context.Context, id int64) (*models.ArticleComment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s *interactionStoreStub) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]models.ArticleComment, error) {
	var out []models.ArticleComment
	for _, comment := range s.comments {
		if comment.ArticleID == articleID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *interactionStoreStub) DeleteComment(ctx context.Context, id int64) error {
	if _, ok := s.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}

type departmentStoreStub struct {
	departments  map[int64]*models.Department
	bySlug       map[string]*models.Department
	nameOrSlug   bool
	hasRelations bool
	created      []*models.Department
	updated      []*models.Department
	deleted      []int64
	nextID       int64
}

func newDepartmentStoreStub(departments ...*models.Department) *departmentStoreStub {
	s := &departmentStoreStub{
		departments: make(map[int64]*models.Department),
		bySlug:      make(map[string]*models.Department),
		nextID:      100,
	}
	for _, d := range departments {
		s.departments[d.ID] = d
		s.bySlug[d.Slug] = d
	}
	return s
}

func (s *departmentStoreStub) Create(ctx context.Context, department *models.Department) error {
	s.nextID++
	department.ID = s.nextID
	s.created = append(s.created, department)
	s.departments[department.ID] = department
	return nil
}

func (s *departmentStoreStub) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	department, ok := s.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	copied := *department
	return &copied, nil
}

func (s *departmentStoreStub) GetBySlug(ctx context.Context, slug string) (*models.Department, error) {
	department, ok := s.bySlug[slug]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	copied := *department
	return &copied, nil
}

func (s *departmentStoreStub) GetAll(ctx context.Context) ([]*models.Department, error) {
	out := make([]*models.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	return out, nil
}

func (s *departmentStoreStub) ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID int64) (bool, error) {
	return s.nameOrSlug, nil
}

func (s *departmentStoreStub) HasRelations(ctx context.Context, id int64) (bool, error) {
	return s.hasRelations, nil
}

func (s *departmentStoreStub) Update(ctx context.Context, department *models.Department) error {
	s.updated = append(s.updated, department)
	s.departments[department.ID] = department
	return nil
}

func (s *departmentStoreStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(s.departments, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type userStoreStub struct {
	users        map[int64]*models.User
	byEmail      map[string]*models.User
	emailTaken   bool
	created      []*models.User
	lastLoginIDs []int64
	lastLoginErr error
	nextID       int64
}

func newUserStoreStub(users ...*models.User) *userStoreStub {
	s := &userStoreStub{
		users:   make(map[int64]*models.User),
		byEmail: make(map[string]*models.User),
		nextID:  100,
	}
	for _, u := range users {
		s.users[u.ID] = u
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *userStoreStub) Create(ctx context.Context, user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	s.created = append(s.created, user)
	s.users[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *userStoreStub) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *userStoreStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *userStoreStub) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.emailTaken, nil
}

func (s *userStoreStub) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if s.lastLoginErr != nil {
		return s.lastLoginErr
	}
	s.lastLoginIDs = append(s.lastLoginIDs, id)
	return nil
}

type profileStoreStub struct {
	profiles map[int64]*models.Profile
	created  []*models.Profile
}

func newProfileStoreStub() *profileStoreStub {
	return &profileStoreStub{profiles: make(map[int64]*models.Profile)}
}

func (s *profileStoreStub) Create(ctx context.Context, profile *models.Profile) error {
	s.created = append(s.created, profile)
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *profileStoreStub) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

type roleStoreStub struct {
	roles   map[int64][]models.AppRole
	granted []models.AppRole
}

func newRoleStoreStub() *roleStoreStub {
	return &roleStoreStub{roles: make(map[int64][]models.AppRole)}
}

func (s *roleStoreStub) GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error) {
	return s.roles[userID], nil
}

func (s *roleStoreStub) Grant(ctx context.Context, userID int64, role models.AppRole) error {
	s.granted = append(s.granted, role)
	s.roles[userID] = append(s.roles[userID], role)
	return nil
}

type storedToken struct {
	userID int64
	expiry time.Time
}

type tokenStoreStub struct {
	tokens    map[string]storedToken
	revoked   []string
	revokeErr error
}

func newTokenStoreStub() *tokenStoreStub {
	return &tokenStoreStub{tokens: make(map[string]storedToken)}
}

func (s *tokenStoreStub) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	s.tokens[token] = storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (s *tokenStoreStub) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	stored, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiry, nil
}

func (s *tokenStoreStub) RevokeToken(ctx context.Context, token string) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked = append(s.revoked, token)
	delete(s.tokens, token)
	return nil
}

func (s *tokenStoreStub) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for token, stored := range s.tokens {
		if stored.userID == userID {
			delete(s.tokens, token)
			s.revoked = append(s.revoked, token)
		}
	}
	return nil
}

type chatStoreStub struct {
	messages  []models.ChatMessage
	lastLimit int
	nextID    int64
}

func (s *chatStoreStub) Create(ctx context.Context, message *models.ChatMessage) error {
	s.nextID++
	message.ID = s.nextID
	s.messages = append(s.messages, *message)
	return nil
}

func (s *chatStoreStub) GetRecentByDepartment(ctx context.Context, departmentID int64, limit int) ([]models.ChatMessage, error) {
	s.lastLimit = limit
	return s.messages, nil
}
