package service

import (
	"context"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/repository"
)

type BannerServiceImpl struct {
	repo repository.BannerRepository
}

func CreateBannerService(repo repository.BannerRepository) BannerService {
	return &BannerServiceImpl{repo: repo}
}

func (s *BannerServiceImpl) GetBanner(ctx context.Context) (banner domain.Banner, err error) {
	return s.repo.GetOrCreateBanner(ctx, domain.DefaultBanner())
}

func (s *BannerServiceImpl) UpdateBanner(ctx context.Context, data dto.BannerRequest) (banner domain.Banner, err error) {
	current, err := s.repo.GetOrCreateBanner(ctx, domain.DefaultBanner())
	if err != nil {
		return
	}

	current.BannerTitle = data.BannerTitle
	current.BannerSubtitle = data.BannerSubtitle
	current.BannerLink = data.BannerLink
	if data.IsActive != nil {
		current.IsActive = *data.IsActive
	}

	return s.repo.UpsertBanner(ctx, current)
}
