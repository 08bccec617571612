package pubsub

import (
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type store struct {
	db *badgerhold.Store
}

func newStore(dbDir string, logger badger.Logger) (*store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if len(dbDir) <= 0 {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}
	return &store{db}, nil
}

func (s *store) add(sub *Subscription) (string, error) {
	var existing []Subscription
	if err := s.db.Find(
		&existing,
		badgerhold.Where("Event").Eq(sub.Event).Index("Event").
			And("Endpoint").Eq(sub.Endpoint),
	); err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	if err := s.db.Insert(sub.ID, *sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (s *store) remove(id string) error {
	if err := s.db.Delete(id, Subscription{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (s *store) get(topic string) (subscriptions, error) {
	var subs []Subscription
	var query *badgerhold.Query
	if topic != ports.UnspecifiedTopic {
		query = badgerhold.Where("Event").Eq(topic).Index("Event")
	}
	if err := s.db.Find(&subs, query); err != nil {
		return nil, err
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs, nil
}

func (s *store) close() error {
	return s.db.Close()
}
