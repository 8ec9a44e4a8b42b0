package service

import (
	"context"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/erazemk/anylist/internal/auth"
	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/store"
)

type seedUser struct {
	fullName string
	email    string
	password string
	roles    model.Roles
}

type seedItem struct {
	name  string
	units string
}

var seedUsers = []seedUser{
	{"Ana Novak", "ana@anylist.test", "Abc123", model.Roles{model.RoleAdmin, model.RoleSuperUser, model.RoleUser}},
	{"Marko Kovač", "marko@anylist.test", "Abc123", model.Roles{model.RoleSuperUser, model.RoleUser}},
	{"Eva Zupan", "eva@anylist.test", "Abc123", model.Roles{model.RoleUser}},
}

var seedItems = []seedItem{
	{"Milk", "liters"},
	{"Bread", "loaves"},
	{"Eggs", "pieces"},
	{"Butter", "grams"},
	{"Cheese", "grams"},
	{"Apples", "kilograms"},
	{"Bananas", "pieces"},
	{"Tomatoes", "kilograms"},
	{"Potatoes", "kilograms"},
	{"Onions", "pieces"},
	{"Rice", "kilograms"},
	{"Pasta", "packs"},
	{"Olive oil", "bottles"},
	{"Coffee", "packs"},
	{"Sugar", "kilograms"},
	{"Salt", "packs"},
	{"Yogurt", "cups"},
	{"Chicken breast", "grams"},
	{"Orange juice", "liters"},
	{"Toilet paper", "rolls"},
}

var seedLists = []string{"Groceries", "Weekend barbecue", "Pharmacy"}

// seedEntries is how many of the first user's items go on the first list.
const seedEntries = 10

// SeedResult summarizes what Seed created.
type SeedResult struct {
	Users     int `json:"users"`
	Items     int `json:"items"`
	Lists     int `json:"lists"`
	ListItems int `json:"list_items"`
}

// Seeder resets the database to a fixed demo dataset.
type Seeder struct {
	store *store.Store
	prod  bool
	faker *gofakeit.Faker
	log   *slog.Logger
}

// NewSeeder creates a Seeder. In production Seed always fails.
func NewSeeder(st *store.Store, prod bool, log *slog.Logger) *Seeder {
	return &Seeder{store: st, prod: prod, faker: gofakeit.New(0), log: log}
}

// Seed deletes all list items, lists, items and users, then loads the demo
// users, gives the first user the demo items and lists, and places the
// first items on the first list with a random quantity. Everything runs in
// one transaction.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	if s.prod {
		return nil, model.ErrForbidden("We cannot run seed in production")
	}

	var res SeedResult
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx *store.Store) error {
		if err := s.wipe(ctx, tx); err != nil {
			return err
		}

		owner, err := s.loadUsers(ctx, tx)
		if err != nil {
			return err
		}
		res.Users = len(seedUsers)

		for _, si := range seedItems {
			units := si.units
			if err := tx.Items.Create(ctx, &model.Item{Name: si.name, QuantityUnits: &units, UserID: owner.ID}); err != nil {
				return err
			}
		}
		res.Items = len(seedItems)

		var first *model.List
		for _, name := range seedLists {
			list := &model.List{Name: name, UserID: owner.ID}
			if err := tx.Lists.Create(ctx, list); err != nil {
				return err
			}
			if first == nil {
				first = list
			}
		}
		res.Lists = len(seedLists)

		items, err := tx.Items.FindAll(ctx, owner.ID, model.Page{Limit: seedEntries}, model.Search{})
		if err != nil {
			return err
		}
		for _, item := range items {
			li := &model.ListItem{
				ListID:   first.ID,
				ItemID:   item.ID,
				Quantity: s.faker.Number(1, 20),
			}
			if err := tx.ListItems.Create(ctx, li); err != nil {
				return err
			}
		}
		res.ListItems = len(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("database seeded", "users", res.Users, "items", res.Items, "lists", res.Lists, "list_items", res.ListItems)
	return &res, nil
}

func (s *Seeder) wipe(ctx context.Context, tx *store.Store) error {
	if err := tx.ListItems.DeleteAll(ctx); err != nil {
		return err
	}
	if err := tx.Lists.DeleteAll(ctx); err != nil {
		return err
	}
	if err := tx.Items.DeleteAll(ctx); err != nil {
		return err
	}
	return tx.Users.DeleteAll(ctx)
}

// loadUsers creates the demo users and returns the first.
func (s *Seeder) loadUsers(ctx context.Context, tx *store.Store) (*model.User, error) {
	var first *model.User
	for _, su := range seedUsers {
		hash, err := auth.HashPassword(su.password)
		if err != nil {
			return nil, err
		}
		u := &model.User{
			FullName:     su.fullName,
			Email:        su.email,
			PasswordHash: hash,
			Roles:        su.roles,
			IsActive:     true,
		}
		if err := tx.Users.Create(ctx, u); err != nil {
			return nil, err
		}
		if first == nil {
			first = u
		}
	}
	return first, nil
}
