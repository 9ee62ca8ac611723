package services

import (
	"sort"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users   map[uint]models.User
	nextID  uint
	demoted []uint
	deleted []uint
	err     error
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[uint]models.User{}, nextID: 1}
	for _, user := range users {
		repo.users[user.ID] = user
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}
	return repo
}

func (repo *stubUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := repo.FindByNormalizedEmail(email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (repo *stubUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	if repo.err != nil {
		return models.User{}, repo.err
	}
	for _, user := range repo.users {
		if strings.ToLower(strings.TrimSpace(user.Email)) == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubUserRepo) FindByID(userID uint) (models.User, error) {
	if repo.err != nil {
		return models.User{}, repo.err
	}
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *stubUserRepo) Create(user *models.User) error {
	user.ID = repo.nextID
	repo.nextID++
	repo.users[user.ID] = *user
	return nil
}

func (repo *stubUserRepo) List() ([]models.User, error) {
	users := make([]models.User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (repo *stubUserRepo) CountUsers() (int64, error) {
	return int64(len(repo.users)), nil
}

func (repo *stubUserRepo) CountPremium(now time.Time) (int64, error) {
	var count int64
	for _, user := range repo.users {
		if user.HasActivePremium(now) {
			count++
		}
	}
	return count, nil
}

func (repo *stubUserRepo) UpdateByID(userID uint, updates map[string]any) error {
	user := repo.users[userID]
	for key, value := range updates {
		switch key {
		case "is_admin":
			user.IsAdmin = value.(bool)
		case "is_premium":
			user.IsPremium = value.(bool)
		case "premium_started_at":
			user.PremiumStartedAt = value.(*time.Time)
		case "premium_expires_at":
			user.PremiumExpiresAt = value.(*time.Time)
		}
	}
	repo.users[userID] = user
	return nil
}

func (repo *stubUserRepo) DemoteAdmin(userID uint) (bool, error) {
	admins := 0
	for _, user := range repo.users {
		if user.IsAdmin {
			admins++
		}
	}
	user, ok := repo.users[userID]
	if admins <= 1 || !ok || !user.IsAdmin {
		return false, nil
	}
	user.IsAdmin = false
	repo.users[userID] = user
	repo.demoted = append(repo.demoted, userID)
	return true, nil
}

func (repo *stubUserRepo) DeleteAccountAndRelatedData(userID uint) error {
	delete(repo.users, userID)
	repo.deleted = append(repo.deleted, userID)
	return nil
}

type stubEntryRepo struct {
	entries []models.MoodEntry
	nextID  uint
}

func newStubEntryRepo(entries ...models.MoodEntry) *stubEntryRepo {
	repo := &stubEntryRepo{nextID: 1}
	for _, entry := range entries {
		if entry.ID == 0 {
			entry.ID = repo.nextID
		}
		if entry.ID >= repo.nextID {
			repo.nextID = entry.ID + 1
		}
		repo.entries = append(repo.entries, entry)
	}
	return repo
}

func (repo *stubEntryRepo) sorted(userID uint) []models.MoodEntry {
	result := make([]models.MoodEntry, 0)
	for _, entry := range repo.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result
}

func (repo *stubEntryRepo) ListByUser(userID uint, filter db.MoodEntryFilter) ([]models.MoodEntry, error) {
	result := make([]models.MoodEntry, 0)
	for _, entry := range repo.sorted(userID) {
		if filter.From != nil && entry.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !entry.Date.Before(*filter.To) {
			continue
		}
		if filter.Mood != "" && entry.Mood != filter.Mood {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (repo *stubEntryRepo) ListRecent(userID uint, limit int) ([]models.MoodEntry, error) {
	result := repo.sorted(userID)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (repo *stubEntryRepo) FindByIDForUser(userID uint, entryID uint) (models.MoodEntry, bool, error) {
	for _, entry := range repo.entries {
		if entry.ID == entryID && entry.UserID == userID {
			return entry, true, nil
		}
	}
	return models.MoodEntry{}, false, nil
}

func (repo *stubEntryRepo) Create(entry *models.MoodEntry) error {
	entry.ID = repo.nextID
	repo.nextID++
	repo.entries = append(repo.entries, *entry)
	return nil
}

func (repo *stubEntryRepo) Save(entry *models.MoodEntry) error {
	for index := range repo.entries {
		if repo.entries[index].ID == entry.ID {
			repo.entries[index] = *entry
		}
	}
	return nil
}

func (repo *stubEntryRepo) DeleteForUser(userID uint, entryID uint) (bool, error) {
	for index, entry := range repo.entries {
		if entry.ID == entryID && entry.UserID == userID {
			repo.entries = append(repo.entries[:index], repo.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubProductRepo struct {
	products map[uint]models.Product
	nextID   uint
}

func newStubProductRepo(products ...models.Product) *stubProductRepo {
	repo := &stubProductRepo{products: map[uint]models.Product{}, nextID: 1}
	for _, product := range products {
		repo.products[product.ID] = product
		if product.ID >= repo.nextID {
			repo.nextID = product.ID + 1
		}
	}
	return repo
}

func (repo *stubProductRepo) ListActive() ([]models.Product, error) {
	result := make([]models.Product, 0)
	all, _ := repo.ListAll()
	for _, product := range all {
		if product.IsActive {
			result = append(result, product)
		}
	}
	return result, nil
}

func (repo *stubProductRepo) ListAll() ([]models.Product, error) {
	result := make([]models.Product, 0, len(repo.products))
	for _, product := range repo.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (repo *stubProductRepo) FindByID(productID uint) (models.Product, bool, error) {
	product, ok := repo.products[productID]
	return product, ok, nil
}

func (repo *stubProductRepo) FindByIDs(productIDs []uint) ([]models.Product, error) {
	result := make([]models.Product, 0)
	for _, productID := range productIDs {
		if product, ok := repo.products[productID]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

func (repo *stubProductRepo) ExistsBySlug(slug string) (bool, error) {
	for _, product := range repo.products {
		if product.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (repo *stubProductRepo) Create(product *models.Product) error {
	product.ID = repo.nextID
	repo.nextID++
	repo.products[product.ID] = *product
	return nil
}

func (repo *stubProductRepo) Save(product *models.Product) error {
	repo.products[product.ID] = *product
	return nil
}

func (repo *stubProductRepo) Deactivate(productID uint) (bool, error) {
	product, ok := repo.products[productID]
	if !ok {
		return false, nil
	}
	product.IsActive = false
	repo.products[productID] = product
	return true, nil
}

type stubOrderRepo struct {
	orders    map[uint]models.Order
	nextID    uint
	createErr error
}

func newStubOrderRepo(orders ...models.Order) *stubOrderRepo {
	repo := &stubOrderRepo{orders: map[uint]models.Order{}, nextID: 1}
	for _, order := range orders {
		repo.orders[order.ID] = order
		if order.ID >= repo.nextID {
			repo.nextID = order.ID + 1
		}
	}
	return repo
}

func (repo *stubOrderRepo) CreateWithItems(order *models.Order) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	order.ID = repo.nextID
	repo.nextID++
	repo.orders[order.ID] = *order
	return nil
}

func (repo *stubOrderRepo) FindByID(orderID uint) (models.Order, bool, error) {
	order, ok := repo.orders[orderID]
	return order, ok, nil
}

func (repo *stubOrderRepo) ListByUser(userID uint) ([]models.Order, error) {
	result := make([]models.Order, 0)
	for _, order := range repo.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (repo *stubOrderRepo) ListAll(status string) ([]models.Order, error) {
	result := make([]models.Order, 0)
	for _, order := range repo.orders {
		if status == "" || order.Status == status {
			result = append(result, order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (repo *stubOrderRepo) UpdateStatus(orderID uint, status string) error {
	order := repo.orders[orderID]
	order.Status = status
	repo.orders[orderID] = order
	return nil
}

func (repo *stubOrderRepo) CountByStatus() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, status := range models.OrderStatuses {
		counts[status] = 0
	}
	for _, order := range repo.orders {
		counts[order.Status]++
	}
	return counts, nil
}

type stubPaymentRepo struct {
	payments    map[uint]models.Payment
	settlements []db.PaymentSettlement
	orders      *stubOrderRepo
	users       *stubUserRepo
}

func newStubPaymentRepo(orders *stubOrderRepo, users *stubUserRepo) *stubPaymentRepo {
	return &stubPaymentRepo{payments: map[uint]models.Payment{}, orders: orders, users: users}
}

func (repo *stubPaymentRepo) FindByOrderID(orderID uint) (models.Payment, bool, error) {
	payment, ok := repo.payments[orderID]
	return payment, ok, nil
}

func (repo *stubPaymentRepo) Settle(settlement db.PaymentSettlement) error {
	settlement.Payment.ID = uint(len(repo.payments) + 1)
	repo.payments[settlement.Payment.OrderID] = *settlement.Payment
	repo.settlements = append(repo.settlements, settlement)
	if repo.orders != nil {
		_ = repo.orders.UpdateStatus(settlement.Payment.OrderID, settlement.OrderStatus)
	}
	if settlement.Premium != nil && repo.users != nil {
		startedAt := settlement.Premium.StartedAt
		expiresAt := settlement.Premium.ExpiresAt
		_ = repo.users.UpdateByID(settlement.Premium.UserID, map[string]any{
			"is_premium":         true,
			"premium_started_at": &startedAt,
			"premium_expires_at": &expiresAt,
		})
	}
	return nil
}

func (repo *stubPaymentRepo) SumCompleted() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, payment := range repo.payments {
		if payment.Status == models.PaymentStatusCompleted {
			total = total.Add(payment.Amount)
		}
	}
	return total, nil
}

func day(raw string) time.Time {
	parsed, err := ParseDay(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func intPointer(value int) *int {
	return &value
}

func floatPointer(value float64) *float64 {
	return &value
}

func stringPointer(value string) *string {
	return &value
}
