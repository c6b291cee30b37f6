package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/quizdesk/quiz_platform/configs"
	"github.com/quizdesk/quiz_platform/database"
	"github.com/quizdesk/quiz_platform/models"
	"gorm.io/gorm"
)

// CheckAndGenerateCertificate issues a certificate when a student scores
// full marks on a quiz. Called asynchronously after grading; at most one
// certificate per (student, quiz).
func CheckAndGenerateCertificate(attemptID uuid.UUID) {
	var attempt models.Attempt
	err := database.DB.Preload("Quiz.Teacher").Preload("Student").
		First(&attempt, "id = ?", attemptID).Error
	if err != nil {
		log.Printf("🔥 Certificate check: failed to load attempt %s: %v", attemptID, err)
		return
	}

	var total int64
	if err := database.DB.Model(&models.Question{}).Where("quiz_id = ?", attempt.QuizID).Count(&total).Error; err != nil {
		log.Printf("🔥 Certificate check: failed to count questions: %v", err)
		return
	}

	if attempt.Score == nil || total == 0 || int64(*attempt.Score) < total {
		return
	}

	var existingCert models.Certificate
	if err := database.DB.Where("student_id = ? AND quiz_id = ?", attempt.StudentID, attempt.QuizID).First(&existingCert).Error; err == nil {
		return
	}

	title := fmt.Sprintf("Perfect Score - %s", attempt.Quiz.Title)

	htmlData, err := generateCertificateHTML(attempt.Student.FullName, attempt.Quiz.Teacher.FullName, attempt.Quiz.Title)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, attempt.StudentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		StudentID:      attempt.StudentID,
		QuizID:         attempt.QuizID,
		AttemptID:      attempt.ID,
		Title:          title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		// A concurrent perfect-score submission may have issued the
		// certificate first; the (student, quiz) unique index makes the
		// loser a no-op.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return
		}
		log.Printf("🔥 Failed to create certificate record for student %s: %v", attempt.StudentID, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for student %s.", title, attempt.StudentID)
	}
}

func generateCertificateHTML(studentName, teacherName, quizTitle string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		TeacherName    string
		QuizTitle      string
		CompletionDate string
	}{
		StudentName:    studentName,
		TeacherName:    teacherName,
		QuizTitle:      quizTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentID, uuid.New().String()),
		Folder:       "quizdesk_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
