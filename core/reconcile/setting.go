package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"
)

var seededAt = time.Unix(0, 0).UTC()

// ReconcileSetting upserts the preferences of viewerKey on the batch domain. A new
// setting is seeded with one subscription per push policy when configured to.
func ReconcileSetting(ctx context.Context, b *Batch, viewerKey string, prop mastodon.SettingProperty) (*graph.Setting, bool, error) {
	if viewerKey == "" {
		return nil, false, ErrViewerRequired
	}
	return Upsert(ctx, b, settingPolicy(b, viewerKey, prop, true))
}

// EnsureSetting returns the setting of viewerKey, creating an empty one when absent.
// An existing setting is left untouched.
func EnsureSetting(ctx context.Context, b *Batch, viewerKey string) (*graph.Setting, error) {
	if viewerKey == "" {
		return nil, ErrViewerRequired
	}
	s, _, err := Upsert(ctx, b, settingPolicy(b, viewerKey, mastodon.SettingProperty{}, false))
	return s, err
}

func settingPolicy(b *Batch, viewerKey string, prop mastodon.SettingProperty, merge bool) Policy[graph.Setting] {
	return Policy[graph.Setting]{
		Kind:   KindSetting,
		Domain: b.domain,
		ID:     viewerKey,
		Find: func(ctx context.Context) (*graph.Setting, error) {
			return store.First[graph.Setting](ctx, b.store, "domain = ? AND viewer_id = ?", b.domain, viewerKey)
		},
		Construct: func() *graph.Setting {
			s := &graph.Setting{Domain: b.domain, ViewerID: viewerKey}
			copySetting(s, prop)
			s.UpdatedAt = b.observedAt
			if !merge {
				s.UpdatedAt = seededAt
			}
			return s
		},
		Merge: func(ctx context.Context, s *graph.Setting) (bool, error) {
			if !merge || !b.newer(s.UpdatedAt) {
				return false, nil
			}
			copySetting(s, prop)
			s.UpdatedAt = b.observedAt
			return true, b.store.Save(ctx, s)
		},
		AfterInsert: func(ctx context.Context, s *graph.Setting) error {
			if !b.cfg.SeedSubscriptions {
				return nil
			}
			return seedSubscriptions(ctx, b, s)
		},
	}
}

// seedSubscriptions activates the policies one second apart before the batch time,
// the default policy last, so ordering by ActivatedAt is strict, the default is the
// most recent, and a subscription activated by this same batch still wins.
// Seeded rows carry the epoch as UpdatedAt so the first real payload always merges.
func seedSubscriptions(ctx context.Context, b *Batch, s *graph.Setting) error {
	for i, policy := range mastodon.Policies() {
		sub := &graph.Subscription{
			SettingID:   s.ID,
			Policy:      policy,
			ActivatedAt: b.observedAt.Add(-time.Duration(i+1) * time.Second),
			UpdatedAt:   seededAt,
		}
		created, err := b.store.InsertIfAbsent(ctx, sub)
		if err != nil {
			return err
		}
		if !created {
			continue
		}

		alerts := &graph.SubscriptionAlerts{SubscriptionID: sub.ID, UpdatedAt: seededAt}
		copyAlerts(alerts, defaultAlerts())
		if _, err := b.store.InsertIfAbsent(ctx, alerts); err != nil {
			return err
		}
	}
	return nil
}

// ReconcileSubscription upserts the push subscription of setting for policy. An empty
// policy falls back to the entity's policy, then to the default policy.
//
// The subscription is (re)activated when created and whenever its alerts change.
func ReconcileSubscription(ctx context.Context, b *Batch, entity mastodon.Subscription, policy string, setting *graph.Setting) (*graph.Subscription, bool, error) {
	if setting == nil {
		return nil, false, errors.New("subscription requires a setting")
	}
	if policy == "" {
		policy = entity.Policy
	}
	if policy == "" {
		policy = mastodon.Policies()[0]
	}
	if !validPolicy(policy) {
		return nil, false, fmt.Errorf("%w %q", ErrUnknownPolicy, policy)
	}

	return Upsert(ctx, b, Policy[graph.Subscription]{
		Kind:   KindSubscription,
		Domain: b.domain,
		ID:     subscriptionKey(setting.ID, policy),
		Find: func(ctx context.Context) (*graph.Subscription, error) {
			return store.First[graph.Subscription](ctx, b.store, "setting_id = ? AND policy = ?", setting.ID, policy)
		},
		Construct: func() *graph.Subscription {
			sub := &graph.Subscription{SettingID: setting.ID, Policy: policy}
			copySubscription(sub, entity)
			sub.ActivatedAt = b.observedAt
			sub.UpdatedAt = b.observedAt
			return sub
		},
		Merge: func(ctx context.Context, sub *graph.Subscription) (bool, error) {
			if !b.newer(sub.UpdatedAt) {
				return false, nil
			}
			copySubscription(sub, entity)
			sub.UpdatedAt = b.observedAt

			changed, err := mergeAlerts(ctx, b, sub, entity.Alerts)
			if err != nil {
				return false, err
			}
			if changed {
				sub.ActivatedAt = b.observedAt
			}
			return true, b.store.Save(ctx, sub)
		},
		AfterInsert: func(ctx context.Context, sub *graph.Subscription) error {
			alerts := &graph.SubscriptionAlerts{SubscriptionID: sub.ID, UpdatedAt: b.observedAt}
			copyAlerts(alerts, entity.Alerts)
			_, err := b.store.InsertIfAbsent(ctx, alerts)
			return err
		},
	})
}

// ActiveSubscription returns the most recently activated subscription of setting.
func ActiveSubscription(ctx context.Context, s *store.Store, setting *graph.Setting) (*graph.Subscription, error) {
	subs, err := store.Find[graph.Subscription](ctx, s, "activated_at DESC", "setting_id = ?", setting.ID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, store.ErrNotFound
	}
	return &subs[0], nil
}

func mergeAlerts(ctx context.Context, b *Batch, sub *graph.Subscription, incoming mastodon.Alerts) (bool, error) {
	alerts, err := store.First[graph.SubscriptionAlerts](ctx, b.store, "subscription_id = ?", sub.ID)
	if errors.Is(err, store.ErrNotFound) {
		alerts = &graph.SubscriptionAlerts{SubscriptionID: sub.ID, UpdatedAt: b.observedAt}
		copyAlerts(alerts, incoming)
		_, err := b.store.InsertIfAbsent(ctx, alerts)
		return true, err
	}
	if err != nil {
		return false, err
	}

	if alertsOf(alerts) == incoming {
		return false, nil
	}
	copyAlerts(alerts, incoming)
	alerts.UpdatedAt = b.observedAt
	return true, b.store.Save(ctx, alerts)
}

func subscriptionKey(settingID uint, policy string) string {
	return fmt.Sprintf("%d/%s", settingID, policy)
}

func validPolicy(policy string) bool {
	for _, p := range mastodon.Policies() {
		if p == policy {
			return true
		}
	}
	return false
}

func defaultAlerts() mastodon.Alerts {
	return mastodon.Alerts{Favourite: true, Follow: true, Reblog: true, Mention: true, Poll: true}
}

func copySetting(s *graph.Setting, prop mastodon.SettingProperty) {
	if prop.Appearance != nil {
		s.Appearance = *prop.Appearance
	}
	if prop.TrueBlackDarkMode != nil {
		s.TrueBlackDarkMode = *prop.TrueBlackDarkMode
	}
	if prop.UsingDefaultBrowser != nil {
		s.UsingDefaultBrowser = *prop.UsingDefaultBrowser
	}
}

func copySubscription(sub *graph.Subscription, entity mastodon.Subscription) {
	sub.RemoteID = entity.ID.String()
	sub.Endpoint = entity.Endpoint
	sub.ServerKey = entity.ServerKey
}

func copyAlerts(a *graph.SubscriptionAlerts, in mastodon.Alerts) {
	a.Favourite = in.Favourite
	a.Follow = in.Follow
	a.Reblog = in.Reblog
	a.Mention = in.Mention
	a.Poll = in.Poll
}

func alertsOf(a *graph.SubscriptionAlerts) mastodon.Alerts {
	return mastodon.Alerts{
		Favourite: a.Favourite,
		Follow:    a.Follow,
		Reblog:    a.Reblog,
		Mention:   a.Mention,
		Poll:      a.Poll,
	}
}
