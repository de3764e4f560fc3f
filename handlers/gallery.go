package handlers

import (
	"attendance/db"
	"attendance/models"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GalleryFaceRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

type GalleryDeleteRequest struct {
	Name string `form:"name" binding:"required"`
}

type AttendanceListRequest struct {
	Limit int `form:"limit"`
}

func GalleryList(c *gin.Context) {
	people, err := models.ListPeople()
	if err != nil {
		log.Printf("GalleryList error: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, people)
}

// GalleryFace serves the stored crop of an enrolled face
func GalleryFace(c *gin.Context) {
	r := GalleryFaceRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	face := models.Face{}
	if err := db.Instance.Where("id = ?", r.ID).Limit(1).Find(&face).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	if face.ID == 0 {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	c.Header("cache-control", "private, max-age=604800")
	service.Storage.Serve(face.Path, c.Request, c.Writer)
}

func GalleryDelete(c *gin.Context) {
	r := GalleryDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, NoNameResponse)
		return
	}
	found, err := service.Forget(r.Name)
	if err != nil {
		log.Printf("GalleryDelete error: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	c.JSON(http.StatusOK, Response{})
}

func AttendanceList(c *gin.Context) {
	r := AttendanceListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if isNotModified(c, db.Instance.Model(&models.Attendance{}).Select("MAX(id)"), strconv.Itoa(r.Limit)) {
		return
	}
	records, err := models.RecentAttendance(r.Limit)
	if err != nil {
		log.Printf("AttendanceList error: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, records)
}
