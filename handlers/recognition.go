package handlers

import (
	"attendance/attendance"
	"attendance/faces"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// readUpload returns the content of the "file" form field
func readUpload(c *gin.Context) (data []byte, filename string, err error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	data, err = io.ReadAll(file)
	return data, header.Filename, err
}

// uploadFailed answers a request whose file could not be read
func uploadFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, TooLargeResponse)
		return
	}
	c.JSON(http.StatusBadRequest, NoFileResponse)
}

func respond(c *gin.Context, action string, result attendance.Result, err error) {
	if err == nil {
		c.JSON(http.StatusOK, ResultResponse{result.Message})
		return
	}
	if errors.Is(err, faces.ErrBadImage) || errors.Is(err, attendance.ErrEmptyName) {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	log.Printf("%s error: %v", action, err)
	c.JSON(http.StatusInternalServerError, Response{action + " failed"})
}

// Upload enrolls the face in "file" under "name" (defaults to the file name)
func Upload(c *gin.Context) {
	data, filename, err := readUpload(c)
	if err != nil {
		uploadFailed(c, err)
		return
	}
	name := c.PostForm("name")
	if strings.TrimSpace(name) == "" {
		name = attendance.LabelOf(filename)
	}
	result, err := service.Enroll(name, data)
	respond(c, "Upload", result, err)
}

func Identify(c *gin.Context) {
	data, _, err := readUpload(c)
	if err != nil {
		uploadFailed(c, err)
		return
	}
	result, err := service.Identify(data)
	respond(c, "Identify", result, err)
}

func Verify(c *gin.Context) {
	data, _, err := readUpload(c)
	if err != nil {
		uploadFailed(c, err)
		return
	}
	result, err := service.Verify(data)
	respond(c, "Verify", result, err)
}
