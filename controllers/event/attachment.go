package event

import (
	"fmt"
	"io"
	"strconv"

	"venue-booking/logger"
	eventModel "venue-booking/models/event"
	attachmentService "venue-booking/services/attachment"
	"venue-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UploadAttachments stores the uploaded files one at a time. Files stored
// before a failure stay stored; the response then names the file that failed.
func (ec *EventController) UploadAttachments(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	booking, err := ec.loadEvent(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Event not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "At least one file is required",
			Data:    nil,
		})
	}

	files := make([]attachmentService.File, 0, len(form.File["files"]))
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: fmt.Sprintf("Failed to read file %q", header.Filename),
				Data:    nil,
			})
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			logger.Error("Failed to read uploaded file", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: fmt.Sprintf("Failed to read file %q", header.Filename),
				Data:    nil,
			})
		}
		files = append(files, attachmentService.File{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  content,
		})
	}

	actor := actorFromClaims(c)
	attachments, uploadErr := ec.Attachments.Upload(c.Context(), files, booking.ID)

	// Persist whatever made it to storage even when a later file failed.
	basePosition := len(booking.Attachments)
	stored := make([]eventModel.Attachment, 0, len(attachments))
	for i := range attachments {
		attachments[i].Position = basePosition + i
		attachments[i].CreatedBy = actor
		if err := ec.DB.Create(&attachments[i]).Error; err != nil {
			logger.Error("Failed to record attachment", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to record attachment",
				Data:    stored,
			})
		}
		stored = append(stored, attachments[i])
	}

	if uploadErr != nil {
		logger.Error("Attachment upload aborted", uploadErr)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: uploadErr.Error(),
			Data:    stored,
		})
	}

	logger.Success(fmt.Sprintf("%d attachment(s) added to event %d", len(stored), booking.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Attachments uploaded successfully",
		Data:    stored,
	})
}

// RemoveAttachment drops the local record; the remote object delete is
// best-effort and never blocks the removal.
func (ec *EventController) RemoveAttachment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}
	attachmentID, err := strconv.ParseUint(c.Params("attachmentId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid attachment id",
			Data:    nil,
		})
	}

	var att eventModel.Attachment
	err = ec.DB.Where("id = ? AND event_id = ?", uint(attachmentID), uint(id)).First(&att).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Removing an already-removed attachment is a no-op.
			return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
				Status:  fiber.StatusOK,
				Message: "Attachment removed successfully",
				Data:    nil,
			})
		}
		logger.Error("Failed to find attachment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	_ = ec.Attachments.Remove(c.Context(), att)

	if err := ec.DB.Delete(&att).Error; err != nil {
		logger.Error("Failed to delete attachment record", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to remove attachment",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Attachment %d removed from event %d", attachmentID, id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Attachment removed successfully",
		Data:    nil,
	})
}

// DownloadAttachment streams the object content; when storage cannot serve it
// the client is redirected to the stored public URL instead.
func (ec *EventController) DownloadAttachment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}
	attachmentID, err := strconv.ParseUint(c.Params("attachmentId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid attachment id",
			Data:    nil,
		})
	}

	var att eventModel.Attachment
	err = ec.DB.Where("id = ? AND event_id = ?", uint(attachmentID), uint(id)).First(&att).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Attachment not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find attachment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	content, fallbackURL, err := ec.Attachments.Download(c.Context(), att)
	if err != nil {
		logger.Warning(fmt.Sprintf("attachment %d download fell back to public URL: %v", att.ID, err))
		return c.Redirect(fallbackURL, fiber.StatusTemporaryRedirect)
	}

	if att.MimeType != "" {
		c.Set(fiber.HeaderContentType, att.MimeType)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", att.DisplayName))
	return c.Send(content)
}
