package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
	"github.com/goodnatureofminers/bitcredit-backend/internal/service"
	"github.com/goodnatureofminers/bitcredit-backend/internal/storage"
)

func loadPeerKey(ctx context.Context, store *storage.FileStore, logger *zap.Logger) (crypto.PrivKey, error) {
	raw, err := store.LoadPeerKey(ctx)
	if err == nil {
		key, err := crypto.UnmarshalPrivateKey(raw)
		if err != nil {
			return nil, fmt.Errorf("decode peer key: %w", err)
		}
		return key, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	key, err := network.GeneratePeerKey()
	if err != nil {
		return nil, err
	}
	raw, err = crypto.MarshalPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("encode peer key: %w", err)
	}
	if err := store.SavePeerKey(ctx, raw); err != nil {
		return nil, err
	}
	logger.Info("generated peer key")
	return key, nil
}

func loadIdentity(
	ctx context.Context,
	store *storage.FileStore,
	self peer.ID,
	profile service.Profile,
	params *chaincfg.Params,
	logger *zap.Logger,
) (model.LocalIdentity, error) {
	identity, err := store.LoadIdentity(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		identity, err = service.NewLocalIdentity(self, profile, params)
		if err != nil {
			return model.LocalIdentity{}, err
		}
		logger.Info("created identity", zap.String("peer", identity.PeerID))
	case err != nil:
		return model.LocalIdentity{}, err
	default:
		if err := service.CheckIdentity(identity, self); err != nil {
			return model.LocalIdentity{}, err
		}
		identity = service.UpdateProfile(identity, profile)
	}

	if err := store.SaveIdentity(ctx, identity); err != nil {
		return model.LocalIdentity{}, err
	}
	return identity, nil
}
