package api

import (
	"github.com/JaimeStill/vouch/internal/classifier"
	"github.com/JaimeStill/vouch/internal/intake"
	"github.com/JaimeStill/vouch/internal/judgements"
	"github.com/JaimeStill/vouch/internal/photos"
	"github.com/JaimeStill/vouch/pkg/ocr"
)

// Domain holds the domain systems that make up the API.
type Domain struct {
	Photos     *photos.Service
	Judgements judgements.System
	Intake     intake.System
}

// NewDomain wires the domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	photoSvc := photos.New(runtime.Storage, runtime.Logger, runtime.MaxUploadSize)
	records := judgements.New(runtime.Database.Connection(), runtime.Logger)

	intakeSys := intake.New(
		photoSvc,
		ocr.NewExtractor(runtime.OCR, runtime.Storage, runtime.OCRTimeout, runtime.Logger),
		runtime.OCR,
		classifier.New(runtime.Keywords...),
		records,
		runtime.Logger,
	)

	return &Domain{
		Photos:     photoSvc,
		Judgements: records,
		Intake:     intakeSys,
	}
}
