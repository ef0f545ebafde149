package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
	"github.com/disintegration/imaging"

	"invoice-annotator/pkg/models"
)

// ErrEmptyRegion is returned when a region falls outside the image.
var ErrEmptyRegion = errors.New("region is outside the image")

// Recognizer is the part of the computer vision client the service uses.
type Recognizer interface {
	RecognizePrintedTextInStream(ctx context.Context, detectOrientation bool, image io.ReadCloser, language computervision.OcrLanguages) (computervision.OcrResult, error)
}

// Service reads printed text inside annotated regions
type Service struct {
	client Recognizer
}

// NewService creates a new OCR service backed by Azure computer vision
func NewService(endpoint, apiKey string) *Service {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &Service{client: client}
}

// NewServiceWithClient creates a service around any Recognizer.
func NewServiceWithClient(client Recognizer) *Service {
	return &Service{client: client}
}

// SuggestTitle crops box out of the image at imagePath and returns the text
// printed inside it. box is in viewport pixels; ratio maps it onto the
// image's native grid.
func (s *Service) SuggestTitle(ctx context.Context, imagePath string, box models.BoundingBox, ratio float64) (string, error) {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}

	region, err := cropRegion(src, box.Scale(ratio))
	if err != nil {
		return "", err
	}

	lines, err := s.ExtractText(ctx, region)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return strings.Join(texts, " "), nil
}

// cropRegion cuts the region out and enhances it for OCR
func cropRegion(src image.Image, box models.BoundingBox) (image.Image, error) {
	rect := image.Rect(int(box[0]), int(box[1]), int(box[2]+0.5), int(box[3]+0.5)).Intersect(src.Bounds())
	if rect.Empty() {
		return nil, ErrEmptyRegion
	}
	img := imaging.Crop(src, rect)

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	return img, nil
}

// ExtractText performs OCR on an image and returns the extracted text lines
func (s *Service) ExtractText(ctx context.Context, img image.Image) ([]models.TextLine, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	result, err := s.client.RecognizePrintedTextInStream(
		ctx,
		true,
		io.NopCloser(&buf),
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	return extractTextFromOCRResult(result), nil
}

// extractTextFromOCRResult extracts text lines with position information from OCR result
func extractTextFromOCRResult(result computervision.OcrResult) []models.TextLine {
	var textLines []models.TextLine
	if result.Regions == nil {
		return nil
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			var lineText strings.Builder
			var boundingBox []int

			if line.BoundingBox != nil {
				for _, part := range strings.Split(*line.BoundingBox, ",") {
					val, _ := strconv.Atoi(part)
					boundingBox = append(boundingBox, val)
				}
			}

			if line.Words != nil {
				for _, word := range *line.Words {
					if word.Text == nil {
						continue
					}
					lineText.WriteString(*word.Text)
					lineText.WriteString(" ")
				}
			}

			if len(boundingBox) >= 4 {
				textLines = append(textLines, models.TextLine{
					Text:   strings.TrimSpace(lineText.String()),
					X:      boundingBox[0],
					Y:      boundingBox[1],
					Width:  boundingBox[2],
					Height: boundingBox[3],
				})
			}
		}
	}
	return textLines
}
