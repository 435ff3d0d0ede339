package service

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/payment"
)

// Profile is the contact data a node owner publishes with its identity.
type Profile struct {
	Name          string
	PostalAddress string
	Email         string
}

// NewLocalIdentity creates the RSA and bitcoin keys of a node owner reachable as id.
func NewLocalIdentity(id peer.ID, profile Profile, params *chaincfg.Params) (model.LocalIdentity, error) {
	rsaKey, err := billcrypto.GenerateKey()
	if err != nil {
		return model.LocalIdentity{}, err
	}
	rsaPub, err := billcrypto.EncodePublicKeyPEM(&rsaKey.PublicKey)
	if err != nil {
		return model.LocalIdentity{}, err
	}
	btcPub, btcPriv, err := payment.NewKey(params)
	if err != nil {
		return model.LocalIdentity{}, err
	}
	return model.LocalIdentity{
		Identity: model.Identity{
			PeerID:           id.String(),
			Name:             profile.Name,
			PostalAddress:    profile.PostalAddress,
			Email:            profile.Email,
			BitcoinPublicKey: btcPub,
			RSAPublicKey:     rsaPub,
		},
		RSAPrivateKey:     billcrypto.EncodePrivateKeyPEM(rsaKey),
		BitcoinPrivateKey: btcPriv,
	}, nil
}

// UpdateProfile replaces the contact data of identity when profile sets it.
func UpdateProfile(identity model.LocalIdentity, profile Profile) model.LocalIdentity {
	if profile.Name != "" {
		identity.Name = profile.Name
	}
	if profile.PostalAddress != "" {
		identity.PostalAddress = profile.PostalAddress
	}
	if profile.Email != "" {
		identity.Email = profile.Email
	}
	return identity
}

// CheckIdentity reports whether identity belongs to peer id.
func CheckIdentity(identity model.LocalIdentity, id peer.ID) error {
	if identity.PeerID != id.String() {
		return fmt.Errorf("identity %s does not belong to peer %s", identity.PeerID, id)
	}
	if _, err := billcrypto.ParsePrivateKeyPEM(identity.RSAPrivateKey); err != nil {
		return fmt.Errorf("parse identity key: %w", err)
	}
	return nil
}
