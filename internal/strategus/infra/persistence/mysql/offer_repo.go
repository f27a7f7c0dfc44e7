package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/mapper"
	"Strategus/internal/strategus/infra/persistence/model"
)

type OfferRepo struct {
	db *gorm.DB
}

func NewOfferRepo(db *gorm.DB) *OfferRepo {
	return &OfferRepo{db: db}
}

func (r *OfferRepo) Get(ctx context.Context, id int64) (*domain.PartyTransferOffer, error) {
	var m model.PartyTransferOffer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOfferNotFound.WithData("offerId", id)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("offerId", id).WithCause(err)
	}
	return r.hydrate(ctx, mapper.OfferModelToDomain(&m))
}

func (r *OfferRepo) FindByParties(ctx context.Context, partyID, targetPartyID int64) (*domain.PartyTransferOffer, error) {
	var m model.PartyTransferOffer
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND target_party_id = ?", partyID, targetPartyID).
		Order("id DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOfferNotFound.WithData("partyId", partyID).WithData("targetPartyId", targetPartyID)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("partyId", partyID).WithCause(err)
	}
	return r.hydrate(ctx, mapper.OfferModelToDomain(&m))
}

// hydrate 补齐报价双方的队伍指针（应答时要检查并扣减发起方的资源）。
func (r *OfferRepo) hydrate(ctx context.Context, o *domain.PartyTransferOffer) (*domain.PartyTransferOffer, error) {
	parties, err := loadPartiesByIDs(ctx, r.db, []int64{o.PartyID, o.TargetPartyID})
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("offerId", o.ID).WithCause(err)
	}
	o.Party = parties[o.PartyID]
	o.TargetParty = parties[o.TargetPartyID]
	return o, nil
}

func (r *OfferRepo) DeleteIntentOfParty(ctx context.Context, partyID int64) error {
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND status = ?", partyID, int8(domain.TransferOfferIntent)).
		Delete(&model.PartyTransferOffer{}).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("partyId", partyID).WithCause(err)
	}
	return nil
}

func (r *OfferRepo) Create(ctx context.Context, offer *domain.PartyTransferOffer) error {
	if err := r.db.WithContext(ctx).Create(mapper.OfferDomainToModel(offer)).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("offerId", offer.ID).WithCause(err)
	}
	return nil
}

func (r *OfferRepo) Save(ctx context.Context, offer *domain.PartyTransferOffer) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).
		Create(mapper.OfferDomainToModel(offer)).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("offerId", offer.ID).WithCause(err)
	}
	return nil
}

func (r *OfferRepo) Delete(ctx context.Context, offer *domain.PartyTransferOffer) error {
	err := r.db.WithContext(ctx).Where("id = ?", offer.ID).
		Delete(&model.PartyTransferOffer{}).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("offerId", offer.ID).WithCause(err)
	}
	return nil
}
