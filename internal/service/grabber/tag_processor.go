package grabber

//go:generate $MOCKGEN -source=tag_processor.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	mp4tag "github.com/Sorrow446/go-mp4tag"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/yamusic-grabber/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// Format is one of the Format* constants and selects the tag container.
	Format string
	// Title is the track title.
	Title string
	// Version is the track version qualifier, written as a subtitle when present.
	Version string
	// Artist is the display artist.
	Artist string
	// Album is the album title.
	Album string
	// Year is the album release year, zero when unknown.
	Year int
	// Genre is the album genre.
	Genre string
	// Label is the record label name.
	Label string
	// ISRC is the recording code, empty when unknown.
	ISRC string
	// TrackNumber is the position within the album, zero when unknown.
	TrackNumber int
	// Cover holds cover art bytes to embed, nil to skip embedding.
	Cover []byte
	// CoverMIMEType is the cover image format, e.g. "image/jpeg".
	CoverMIMEType string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// extractFLACCommentResult contains the result of extracting FLAC comment metadata.
type extractFLACCommentResult struct {
	// Comment is the FLAC Vorbis comment metadata block.
	Comment *flacvorbis.MetaDataBlockVorbisComment
	// Index is the index of the comment block in the FLAC file metadata (-1 if not found).
	Index int
}

// Static error definitions for better error handling.
var (
	// ErrEmptyTrackPath indicates that the track file path is empty.
	ErrEmptyTrackPath = errors.New("track path cannot be empty")
)

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes metadata to the audio file based on its format.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	switch req.Format {
	case FormatFLAC:
		return tp.writeFLACTags(ctx, req)
	case FormatMP3:
		return tp.writeMP3Tags(req)
	default:
		return tp.writeMP4Tags(req)
	}
}

func (tp *TagProcessorImpl) writeFLACTags(ctx context.Context, req *WriteTagsRequest) error {
	// Parse the FLAC file.
	f, err := flac.ParseFile(filepath.Clean(req.TrackPath))
	if err != nil {
		return err
	}

	// Extract existing FLAC comments (metadata) from the file.
	commentResult, err := tp.extractFLACComment(f)
	if err != nil {
		return err
	}

	tag := commentResult.Comment

	// If no existing comments are found, create a new metadata block.
	if tag == nil {
		tag = flacvorbis.New()
	}

	// Add tags to the FLAC metadata block.
	if err = tp.addFLACTags(tag, req); err != nil {
		return err
	}

	// Marshal the updated metadata and update the FLAC file's metadata blocks.
	tagMeta := tag.Marshal()
	if commentResult.Index >= 0 {
		f.Meta[commentResult.Index] = &tagMeta
	} else {
		f.Meta = append(f.Meta, &tagMeta)
	}

	// Embed the cover art into the FLAC file if provided.
	tp.embedFLACCover(ctx, f, req)

	// Save the updated FLAC file.
	return f.Save(req.TrackPath)
}

func (tp *TagProcessorImpl) extractFLACComment(f *flac.File) (*extractFLACCommentResult, error) {
	// Iterate through the metadata blocks to find the Vorbis comment block.
	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}

		// Parse the Vorbis comment block.
		comment, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err == nil {
			return &extractFLACCommentResult{
				Comment: comment,
				Index:   idx,
			}, nil
		}
	}

	// Return nil comment if no Vorbis comment block is found.
	return &extractFLACCommentResult{
		Comment: nil,
		Index:   -1,
	}, nil
}

func (tp *TagProcessorImpl) addFLACTags(tag *flacvorbis.MetaDataBlockVorbisComment, req *WriteTagsRequest) error {
	flacTags := map[string]string{
		"TITLE":       req.Title,
		"VERSION":     req.Version,
		"ARTIST":      req.Artist,
		"ALBUM":       req.Album,
		"GENRE":       req.Genre,
		"COPYRIGHT":   req.Label,
		"ISRC":        req.ISRC,
		"DATE":        formatNumberTag(req.Year),
		"TRACKNUMBER": formatNumberTag(req.TrackNumber),
	}

	// Add each tag to the Vorbis comment block.
	for k, v := range flacTags {
		if v == "" {
			continue
		}

		if err := tag.Add(k, v); err != nil {
			return err
		}
	}

	return nil
}

func (tp *TagProcessorImpl) embedFLACCover(ctx context.Context, f *flac.File, req *WriteTagsRequest) {
	if len(req.Cover) == 0 {
		return
	}

	// Create a new FLAC picture block from the image data.
	picture, err := flacpicture.NewFromImageData(
		flacpicture.PictureTypeFrontCover, "", req.Cover, req.CoverMIMEType)
	if err != nil {
		logger.Errorf(ctx, "Failed to embed image to FLAC: %v", err)

		return
	}

	// Add the picture block to the FLAC file's metadata.
	pictureMeta := picture.Marshal()
	f.Meta = append(f.Meta, &pictureMeta)
}

func (tp *TagProcessorImpl) writeMP3Tags(req *WriteTagsRequest) error {
	// Open the MP3 file for writing metadata.
	//nolint:exhaustruct // ParseFrames intentionally omitted when Parse=false (parsing disabled).
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: false})
	if err != nil {
		return err
	}

	defer tag.Close() //nolint:errcheck // Save flushes the file; Close only releases the handle.

	// Set default encoding for the tags.
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	tag.SetTitle(req.Title)
	tag.SetArtist(req.Artist)
	tag.SetAlbum(req.Album)
	tag.SetGenre(req.Genre)

	if req.Year > 0 {
		tag.SetYear(strconv.Itoa(req.Year))
	}

	if req.TrackNumber > 0 {
		tag.AddTextFrame(
			tag.CommonID("Track number/Position in set"),
			tag.DefaultEncoding(),
			strconv.Itoa(req.TrackNumber),
		)
	}

	if req.Label != "" {
		tag.AddTextFrame(tag.CommonID("Publisher"), tag.DefaultEncoding(), req.Label)
	}

	if req.Version != "" {
		tag.AddTextFrame(tag.CommonID("Subtitle/Description refinement"), tag.DefaultEncoding(), req.Version)
	}

	if req.ISRC != "" {
		tag.AddTextFrame(tag.CommonID("ISRC"), tag.DefaultEncoding(), req.ISRC)
	}

	// Embed the cover art into the MP3 file if provided.
	if len(req.Cover) > 0 {
		//nolint:exhaustruct // Description field intentionally empty for cover images.
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    req.CoverMIMEType,
			PictureType: id3v2.PTFrontCover,
			Picture:     req.Cover,
		})
	}

	// Save the updated MP3 file.
	return tag.Save()
}

func (tp *TagProcessorImpl) writeMP4Tags(req *WriteTagsRequest) error {
	mp4, err := mp4tag.Open(req.TrackPath)
	if err != nil {
		return err
	}

	defer mp4.Close() //nolint:errcheck // Write flushes the file; Close only releases the handle.

	//nolint:exhaustruct // Only the fields backed by source metadata are written.
	tags := &mp4tag.MP4Tags{
		Title:       req.Title,
		Artist:      req.Artist,
		Album:       req.Album,
		CustomGenre: req.Genre,
	}

	if req.Year > 0 {
		tags.Year = int32(req.Year) //nolint:gosec // Years fit comfortably in int32.
	}

	if req.TrackNumber > 0 {
		tags.TrackNumber = int16(req.TrackNumber) //nolint:gosec // Track numbers fit comfortably in int16.
	}

	custom := make(map[string]string)

	if req.Label != "" {
		custom["LABEL"] = req.Label
	}

	if req.ISRC != "" {
		custom["ISRC"] = req.ISRC
	}

	if req.Version != "" {
		custom["VERSION"] = req.Version
	}

	if len(custom) > 0 {
		tags.Custom = custom
	}

	if len(req.Cover) > 0 {
		tags.Pictures = []*mp4tag.MP4Picture{{Data: req.Cover}} //nolint:exhaustruct // Format is detected from the data.
	}

	return mp4.Write(tags, []string{})
}

// formatNumberTag renders a positive number as a tag value, empty otherwise.
func formatNumberTag(value int) string {
	if value <= 0 {
		return ""
	}

	return strconv.Itoa(value)
}
